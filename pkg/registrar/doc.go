// Package registrar implements the ordered text-based registration engine.
//
// # Overview
//
// A Registrar edits a structured configuration list (an ordered sequence of
// registered module entries inside a configuration file) to insert, detect,
// or remove an entry while preserving the surrounding file's formatting. It
// works purely by pattern matching over the raw text; no parser or document
// model of the configuration language exists.
//
// # Ordering rules
//
// Two orderings are enforced on insertion:
//
//   - Component entries must follow their dependencies. If every configured
//     dependency is registered, the new entry is anchored after the last one;
//     if any is missing, the insertion is blocked and reported.
//   - Module entries must precede the application group. If any configured
//     application entry is registered, the new entry is anchored before the
//     first one; otherwise insertion falls back to the category's generic
//     pattern.
//
// "Last" and "first" are decided by detection match span length, not byte
// offset. See the anchor functions for the rule.
//
// # Usage
//
//	set := profile.MustGet("application-config").PatternSet()
//	reg, err := registrar.New(set,
//	    registrar.WithStore(storage.NewFileStore("config/modules.php")),
//	    registrar.WithDependencies("Acme\\Core"),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := reg.Register(ctx, "Acme\\Log", registrar.CategoryComponent); err != nil {
//	    return err
//	}
//
// Each operation is a full read-modify-write cycle against the store. The
// engine performs no locking; concurrent writers to the same underlying
// resource need external mutual exclusion.
package registrar
