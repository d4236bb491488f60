package db

import (
	"github.com/brianvoe/gofakeit/v7"
	db2 "github.com/ether/etherpad-todolist/lib/models/db"
)

func CreateRandomDocument() db2.DocumentDB {
	return db2.DocumentDB{
		ID:      gofakeit.UUID(),
		Content: `<ul class="todo-list"><li><label class="todo-list__label"><input type="checkbox" disabled="disabled"><span class="todo-list__label__description">` + gofakeit.Word() + `</span></label></li></ul>`,
	}
}
