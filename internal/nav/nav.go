// Package nav names the screens of the app and the interface used to move
// between them.
package nav

// Route identifies a screen.
type Route string

const (
	Entry             Route = "Entry"
	HomeNav           Route = "HomeNav"
	WalletView        Route = "WalletView"
	ImportFromSeed    Route = "ImportFromSeed"
	Settings          Route = "Settings"
	AdvancedSettings  Route = "AdvancedSettings"
	NetworkSettings   Route = "NetworkSettings"
	SeedWords         Route = "SeedWords"
	SyncWithExtension Route = "SyncWithExtension"
)

// Params are passed to the destination screen.
type Params map[string]string

// Navigator moves between screens. Navigate returns to an existing screen
// when one is on the stack, Push always opens a new one.
type Navigator interface {
	Navigate(route Route, params Params)
	Push(route Route, params Params)
}

// IsRoot reports whether route replaces the whole stack when navigated to.
func IsRoot(route Route) bool {
	switch route {
	case Entry, HomeNav, WalletView:
		return true
	}
	return false
}
