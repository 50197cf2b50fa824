// Package platform defines the contract every supported AI coding assistant
// implements, and the ordered registry that holds them.
//
// A [Platform] answers two questions: is the host tool present on this
// machine ([Platform.Detect]), and how is ulink installed into it
// ([Platform.Setup]). Static facts about the platform live in its
// [Descriptor].
//
// # Registry
//
// [Registry] keeps platforms in registration order. That order is the order
// items are shown to the user and the order setups run in.
//
//	reg := platform.NewRegistry()
//	_ = reg.Register(cursor.New(deps))
//	for _, p := range reg.All() {
//	    fmt.Println(p.Descriptor().DisplayName)
//	}
//
// # File Hosts
//
// Most hosts are configured the same way: merge a connection entry into a
// config file and copy the skill bundle next to it. [FileHost] implements that
// once. The cursor, antigravity and codex subpackages build a FileHost with
// their own paths. The claude subpackage drives the host's plugin installer
// instead.
package platform
