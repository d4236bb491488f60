package stats

import (
	"github.com/ether/etherpad-todolist/lib"
	"github.com/ether/etherpad-todolist/lib/settings"
)

func Init(store *lib.InitStore) {
	checks := []Checker{DBChecker{store.Store}}
	if store.Handler != nil {
		checks = append(checks, RoomChecker{store.Handler.Hub()})
	}

	store.C.Get("/api/health", Handler(
		settings.Version(),
		"todolist-api",
		checks,
	))
}
