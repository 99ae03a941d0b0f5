// Package templates renders the HTML pages served by the web modules.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/tasklist/internal/web/platform/flash"
)

const pageContentType = "text/html; charset=utf-8"

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title    string
	Username string
	Notice   *flash.Notice
}

// WritePage renders a templ component as a full HTML response.
func WritePage(w http.ResponseWriter, r *http.Request, statusCode int, page templ.Component) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	if page == nil {
		return fmt.Errorf("page component is required")
	}
	w.Header().Set("Content-Type", pageContentType)
	w.WriteHeader(statusCode)
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	return page.Render(ctx, w)
}

// Layout wraps page content in the shared HTML shell.
func Layout(page PageContext, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := strings.TrimSpace(page.Title)
		if title == "" {
			title = "Tasklist"
		}
		if _, err := io.WriteString(w, "<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>"+templ.EscapeString(title)+"</title></head><body>"); err != nil {
			return err
		}
		if err := renderHeader(w, page); err != nil {
			return err
		}
		if err := renderNotice(w, page.Notice); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<main>"); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

func renderHeader(w io.Writer, page PageContext) error {
	if _, err := io.WriteString(w, "<header><h1>Tasklist</h1>"); err != nil {
		return err
	}
	if page.Username != "" {
		if _, err := io.WriteString(w, "<nav><span>"+templ.EscapeString(page.Username)+"</span> <a href=\"/auth/logout\">Log out</a></nav>"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</header>")
	return err
}

func renderNotice(w io.Writer, notice *flash.Notice) error {
	if notice == nil || strings.TrimSpace(notice.Message) == "" {
		return nil
	}
	kind := templ.EscapeString(string(notice.Kind))
	_, err := io.WriteString(w, "<p class=\"notice notice-"+kind+"\">"+templ.EscapeString(notice.Message)+"</p>")
	return err
}

// AuthFormData carries prefilled values for the register and login forms.
type AuthFormData struct {
	Username string
	Email    string
	Next     string
}

// RegisterPage renders the account registration form.
func RegisterPage(page PageContext, form AuthFormData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Create account</h2>")
		b.WriteString("<form method=\"post\" action=\"/auth/register\">")
		b.WriteString("<label>Username <input type=\"text\" name=\"username\" value=\"" + templ.EscapeString(form.Username) + "\" required></label>")
		b.WriteString("<label>Email <input type=\"email\" name=\"email\" value=\"" + templ.EscapeString(form.Email) + "\" required></label>")
		b.WriteString("<label>Password <input type=\"password\" name=\"password\" required></label>")
		b.WriteString("<button type=\"submit\">Register</button>")
		b.WriteString("</form>")
		b.WriteString("<p><a href=\"/auth/login\">Already have an account? Log in</a></p>")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout(page, content)
}

// LoginPage renders the login form, preserving the post-login destination.
func LoginPage(page PageContext, form AuthFormData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Log in</h2>")
		b.WriteString("<form method=\"post\" action=\"/auth/login\">")
		if form.Next != "" {
			b.WriteString("<input type=\"hidden\" name=\"next\" value=\"" + templ.EscapeString(form.Next) + "\">")
		}
		b.WriteString("<label>Username <input type=\"text\" name=\"username\" value=\"" + templ.EscapeString(form.Username) + "\" required></label>")
		b.WriteString("<label>Password <input type=\"password\" name=\"password\" required></label>")
		b.WriteString("<button type=\"submit\">Log in</button>")
		b.WriteString("</form>")
		b.WriteString("<p><a href=\"/auth/register\">Need an account? Register</a></p>")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout(page, content)
}

// TodoItemView carries one rendered to-do row.
type TodoItemView struct {
	ID    string
	Title string
	Done  bool
}

// TodoListData carries the to-do list page contents.
type TodoListData struct {
	Items []TodoItemView
}

// TodoListPage renders the to-do list with the add form.
func TodoListPage(page PageContext, data TodoListData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Your to-dos</h2>")
		b.WriteString("<form method=\"post\" action=\"/add\">")
		b.WriteString("<input type=\"text\" name=\"title\" placeholder=\"What needs doing?\" required>")
		b.WriteString("<input type=\"text\" name=\"description\" placeholder=\"Details (optional)\">")
		b.WriteString("<button type=\"submit\">Add</button>")
		b.WriteString("</form>")
		if len(data.Items) == 0 {
			b.WriteString("<p>Nothing here yet.</p>")
		} else {
			b.WriteString("<ul>")
			for _, item := range data.Items {
				id := url.PathEscape(item.ID)
				b.WriteString("<li>")
				if item.Done {
					b.WriteString("<s>" + templ.EscapeString(item.Title) + "</s>")
				} else {
					b.WriteString("<span>" + templ.EscapeString(item.Title) + "</span>")
				}
				b.WriteString(" <a href=\"/update/" + id + "\">Toggle</a>")
				b.WriteString(" <a href=\"/delete/" + id + "\">Delete</a>")
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout(page, content)
}
