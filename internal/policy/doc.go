// Package policy builds the policy catalog consumed by the web demo.
//
// The policy root is a three-level directory tree:
//
//	policy_models/<agent type>/<morphology>/<morphology>_s<seed>/[name.txt]
//
// Indexer walks the tree bottom-up through pure functions (seeds, then
// morphologies, then types), each returning a freshly built slice. Every
// level is sorted, so an unchanged tree always produces the same catalog.
// Agent types and morphologies sort by name; seeds sort by seed id under
// the configured model.SeedOrder.
package policy
