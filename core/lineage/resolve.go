package lineage

import "arcade-catalog/core/model"

// NameIndex maps game names to identity hashes within one release. It is built while the
// release's Ordering is consumed and must not outlive that release.
type NameIndex map[string]model.Hash

// Add records a name. The first identity seen for a name wins.
func (idx NameIndex) Add(name string, hash model.Hash) bool {
	if _, ok := idx[name]; ok {
		return false
	}
	idx[name] = hash
	return true
}

// Parents holds a game's resolved parent identities. Empty fields are unset.
type Parents struct {
	CloneOf model.Hash
	RomOf   model.Hash
}

// Resolve looks up the game's clone_of and rom_of targets in the index. A self reference is
// satisfied without setting anything. A missing target is returned as an unresolved reference
// and leaves the field unset; the game itself stays valid.
func Resolve(game model.GameDescriptor, index NameIndex) (Parents, []model.UnresolvedReference) {
	var parents Parents
	var unresolved []model.UnresolvedReference

	lookup := func(attr, target string, dst *model.Hash) {
		if target == "" || target == game.Name {
			return
		}
		if h, ok := index[target]; ok {
			*dst = h
			return
		}
		unresolved = append(unresolved, model.UnresolvedReference{
			Game:      game.Name,
			Attribute: attr,
			Target:    target,
			Reason:    model.ReasonMissing,
		})
	}
	lookup(model.AttrCloneOf, game.CloneOf, &parents.CloneOf)
	lookup(model.AttrRomOf, game.RomOf, &parents.RomOf)

	return parents, unresolved
}

// Declared lists the game's non-self references as unresolved with the given reason. It is
// used when a release's lineage could not be ordered and resolution is skipped.
func Declared(game model.GameDescriptor, reason string) []model.UnresolvedReference {
	var refs []model.UnresolvedReference
	for _, ref := range []struct{ attr, target string }{
		{model.AttrCloneOf, game.CloneOf},
		{model.AttrRomOf, game.RomOf},
	} {
		if ref.target == "" || ref.target == game.Name {
			continue
		}
		refs = append(refs, model.UnresolvedReference{
			Game:      game.Name,
			Attribute: ref.attr,
			Target:    ref.target,
			Reason:    reason,
		})
	}
	return refs
}

// Missing lists references whose target name is absent from the game set.
func Missing(games []model.GameDescriptor) []model.UnresolvedReference {
	names := make(map[string]struct{}, len(games))
	for _, g := range games {
		names[g.Name] = struct{}{}
	}
	var refs []model.UnresolvedReference
	for _, g := range games {
		for _, ref := range Declared(g, model.ReasonMissing) {
			if _, ok := names[ref.Target]; !ok {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}
