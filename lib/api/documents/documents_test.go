package documents

import (
	"strings"
	"testing"

	"github.com/ether/etherpad-todolist/lib/api/apitest"
	"github.com/ether/etherpad-todolist/lib/commands"
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnknownDocument(t *testing.T) {
	store := apitest.NewStore(t)
	Init(store)

	for _, target := range []string{
		"/api/documents/missing",
		"/api/documents/missing/data",
		"/api/documents/missing/view",
		"/api/documents/missing/commands",
	} {
		resp := apitest.Do(t, store.C, "GET", target, nil)
		assert.Equal(t, 404, resp.StatusCode, target)
	}

	resp := apitest.Do(t, store.C, "DELETE", "/api/documents/missing", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestPutAndGetDocument(t *testing.T) {
	store := apitest.NewStore(t)
	Init(store)

	resp := apitest.Do(t, store.C, "PUT", "/api/documents/plan", ImportRequest{
		Content: "- [x] write\n- [ ] ship\n",
		Format:  "markdown",
	})
	require.Equal(t, 200, resp.StatusCode)

	var doc DocumentResponse
	apitest.Decode(t, resp, &doc)
	assert.Equal(t, "plan", doc.ID)
	require.Len(t, doc.Blocks, 2)
	assert.True(t, doc.Blocks[0].Checked)
	assert.Equal(t, block.Todo, doc.Blocks[1].Type)

	apitest.Decode(t, apitest.Do(t, store.C, "GET", "/api/documents/plan", nil), &doc)
	assert.Contains(t, doc.Data, `<ul class="todo-list">`)

	stored, err := store.Store.GetDocument("plan")
	require.NoError(t, err)
	assert.Equal(t, doc.Data, stored.Content)

	var list DocumentListResponse
	apitest.Decode(t, apitest.Do(t, store.C, "GET", "/api/documents", nil), &list)
	assert.Equal(t, []string{"plan"}, list.DocumentIds)
}

func TestPutDocumentRejections(t *testing.T) {
	store := apitest.NewStore(t)
	Init(store)

	resp := apitest.Do(t, store.C, "PUT", "/api/documents/plan", ImportRequest{Content: "x", Format: "docx"})
	assert.Equal(t, 422, resp.StatusCode)

	resp = apitest.Do(t, store.C, "PUT", "/api/documents/plan", ImportRequest{Content: strings.Repeat("x", 2048)})
	assert.Equal(t, 413, resp.StatusCode)
}

func TestDataAndViewEndpoints(t *testing.T) {
	store := apitest.NewStore(t)
	Init(store)

	apitest.Do(t, store.C, "PUT", "/api/documents/plan", ImportRequest{
		Content: `<ul><li>one<ul><li>two</li></ul></li></ul>`,
	})

	resp := apitest.Do(t, store.C, "GET", "/api/documents/plan/data", nil)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "<ul><li>one<ul><li>two</li></ul></li></ul>", apitest.Body(t, resp))

	resp = apitest.Do(t, store.C, "GET", "/api/documents/plan/data?format=markdown", nil)
	assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "- one\n  - two\n", apitest.Body(t, resp))

	resp = apitest.Do(t, store.C, "GET", "/api/documents/plan/data?format=odt", nil)
	assert.Equal(t, 400, resp.StatusCode)

	resp = apitest.Do(t, store.C, "GET", "/api/documents/plan/view", nil)
	assert.Contains(t, apitest.Body(t, resp), `<span class="ck-list-bogus-paragraph">two</span>`)
}

func TestSelectionAndCommands(t *testing.T) {
	store := apitest.NewStore(t)
	Init(store)

	apitest.Do(t, store.C, "PUT", "/api/documents/plan", ImportRequest{Content: `<p>one</p><p>two</p>`})

	resp := apitest.Do(t, store.C, "POST", "/api/documents/plan/selection", SelectionRequest{Start: 0, End: 1})
	require.Equal(t, 200, resp.StatusCode)
	var sel editor.Selection
	apitest.Decode(t, resp, &sel)
	assert.Equal(t, editor.Selection{Start: 0, End: 1}, sel)

	resp = apitest.Do(t, store.C, "POST", "/api/documents/plan/selection", SelectionRequest{Start: 1, End: 0})
	assert.Equal(t, 422, resp.StatusCode)
	resp = apitest.Do(t, store.C, "POST", "/api/documents/plan/selection", SelectionRequest{Start: 0, End: 5})
	assert.Equal(t, 400, resp.StatusCode)

	resp = apitest.Do(t, store.C, "POST", "/api/documents/plan/commands/"+commands.TodoList, nil)
	require.Equal(t, 200, resp.StatusCode)
	var result CommandResponse
	apitest.Decode(t, resp, &result)
	assert.True(t, result.Applied)

	var doc DocumentResponse
	apitest.Decode(t, apitest.Do(t, store.C, "GET", "/api/documents/plan", nil), &doc)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, block.Todo, doc.Blocks[0].Type)
	assert.Equal(t, block.Todo, doc.Blocks[1].Type)

	force := true
	resp = apitest.Do(t, store.C, "POST", "/api/documents/plan/commands/"+commands.CheckTodoList, CommandRequest{
		ItemID:     doc.Blocks[1].ID,
		ForceValue: &force,
	})
	apitest.Decode(t, resp, &result)
	assert.True(t, result.Applied)

	var states []CommandStateResponse
	apitest.Decode(t, apitest.Do(t, store.C, "GET", "/api/documents/plan/commands?itemId="+doc.Blocks[1].ID, nil), &states)
	assert.Contains(t, states, CommandStateResponse{Name: commands.CheckTodoList, Enabled: true, Value: true})
	assert.Contains(t, states, CommandStateResponse{Name: commands.TodoList, Enabled: true, Value: true})

	resp = apitest.Do(t, store.C, "POST", "/api/documents/plan/commands/bold", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteDocument(t *testing.T) {
	store := apitest.NewStore(t)
	Init(store)

	apitest.Do(t, store.C, "PUT", "/api/documents/plan", ImportRequest{Content: `<p>one</p>`})

	resp := apitest.Do(t, store.C, "DELETE", "/api/documents/plan", nil)
	assert.Equal(t, 204, resp.StatusCode)

	resp = apitest.Do(t, store.C, "GET", "/api/documents/plan", nil)
	assert.Equal(t, 404, resp.StatusCode)
}
