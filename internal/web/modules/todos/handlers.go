package todos

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/tasklist/internal/storage"
	"github.com/louisbranch/tasklist/internal/todo"
	module "github.com/louisbranch/tasklist/internal/web/module"
	apperrors "github.com/louisbranch/tasklist/internal/web/platform/errors"
	"github.com/louisbranch/tasklist/internal/web/platform/flash"
	"github.com/louisbranch/tasklist/internal/web/platform/httpx"
	"github.com/louisbranch/tasklist/internal/web/routepath"
	"github.com/louisbranch/tasklist/internal/web/templates"
)

type handlers struct {
	store         storage.TodoStore
	users         storage.UserStore
	resolveUserID module.ResolveUserID
	clock         func() time.Time
	idGenerator   func() (string, error)
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	userID := h.resolveUserID(r)
	if userID == "" {
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}

	items, err := h.store.ListTodosByOwner(httpx.RequestContext(r), userID)
	if err != nil {
		log.Printf("list todos for %s: %v", userID, err)
		httpx.WriteError(w, apperrors.E(apperrors.KindUnavailable, "The list could not be loaded."))
		return
	}

	page := templates.PageContext{Title: "Your to-dos", Username: h.lookupUsername(r, userID)}
	if notice, ok := flash.ReadAndClear(w, r); ok {
		page.Notice = &notice
	}
	views := make([]templates.TodoItemView, 0, len(items))
	for _, item := range items {
		views = append(views, templates.TodoItemView{ID: item.ID, Title: item.Title, Done: item.Done})
	}
	if err := templates.WritePage(w, r, http.StatusOK, templates.TodoListPage(page, templates.TodoListData{Items: views})); err != nil {
		log.Printf("render todo list: %v", err)
	}
}

func (h handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	userID := h.resolveUserID(r)
	if userID == "" {
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}
	if err := r.ParseForm(); err != nil {
		flash.Write(w, r, flash.NoticeError("The submitted form could not be read."))
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}

	created, err := todo.CreateTodo(todo.CreateTodoInput{
		OwnerID:     userID,
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	}, h.clock, h.idGenerator)
	if err != nil {
		if errors.Is(err, todo.ErrEmptyTitle) {
			flash.Write(w, r, flash.NoticeError("A title is required."))
		} else {
			log.Printf("create todo for %s: %v", userID, err)
			flash.Write(w, r, flash.NoticeError("The item could not be added."))
		}
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}

	if err := h.store.PutTodo(httpx.RequestContext(r), created); err != nil {
		log.Printf("store todo %s: %v", created.ID, err)
		flash.Write(w, r, flash.NoticeError("The item could not be added."))
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Root)
}

func (h handlers) handleToggle(w http.ResponseWriter, r *http.Request) {
	userID := h.resolveUserID(r)
	if userID == "" {
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}

	todoID := r.PathValue("id")
	err := h.store.ToggleTodo(httpx.RequestContext(r), todoID, userID, h.clock().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			flash.Write(w, r, flash.NoticeError("That item no longer exists."))
		} else {
			log.Printf("toggle todo %s: %v", todoID, err)
			flash.Write(w, r, flash.NoticeError("The item could not be updated."))
		}
	}
	httpx.WriteRedirect(w, r, routepath.Root)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID := h.resolveUserID(r)
	if userID == "" {
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}

	todoID := r.PathValue("id")
	err := h.store.DeleteTodo(httpx.RequestContext(r), todoID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			flash.Write(w, r, flash.NoticeError("That item no longer exists."))
		} else {
			log.Printf("delete todo %s: %v", todoID, err)
			flash.Write(w, r, flash.NoticeError("The item could not be deleted."))
		}
	}
	httpx.WriteRedirect(w, r, routepath.Root)
}

// lookupUsername resolves the display name for the page header. A failed
// lookup degrades to an empty header rather than failing the page.
func (h handlers) lookupUsername(r *http.Request, userID string) string {
	found, err := h.users.GetUser(httpx.RequestContext(r), userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("load user %s: %v", userID, err)
		}
		return ""
	}
	return found.Username
}
