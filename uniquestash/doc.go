// Package uniquestash provides UniqueStash, a slot table like package stash whose keys are
// tags that are never reissued.
//
// A Tag pairs a slot index with the generation of the slot at the time the value was put.
// Taking a value advances the generation, so every tag issued for the old value stops
// matching. Looking up a stale tag behaves exactly like looking up a missing one.
//
//	sessions := uniquestash.New[*Session]()
//	tag := sessions.Put(session)
//
//	_, _ = sessions.Take(tag)
//
//	if _, ok := sessions.Get(tag); !ok {
//		// tag is stale forever, even once its slot holds a new session
//	}
//
// Tags have a canonical text form, "<index>/<version>", so they can be handed to clients
// and parsed back with ParseTag.
//
// A slot whose generation reaches the maximum uint64 is retired when freed instead of
// wrapping around, so no tag is ever issued twice.
package uniquestash
