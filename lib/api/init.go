package api

import (
	"github.com/ether/etherpad-todolist/lib"
	"github.com/ether/etherpad-todolist/lib/api/convert"
	"github.com/ether/etherpad-todolist/lib/api/documents"
	"github.com/ether/etherpad-todolist/lib/api/stats"
)

func InitAPI(store *lib.InitStore) {
	convert.Init(store)
	documents.Init(store)
	stats.Init(store)
}
