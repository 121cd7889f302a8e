package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-browser/internal/api/shared"
	"github.com/phrazzld/scry-browser/internal/browser"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/platform/logger"
)

var pageTemplate = template.Must(template.New("browser").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em }
nav form { display: inline }
nav button.chosen { font-weight: bold; text-decoration: underline }
.status { color: #666 }
.error { color: #a00 }
li.correct { color: #070 }
</style>
<script>
window.addEventListener("load", function() {
    var version = {{.State.Version}};
    var scheme = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(scheme + location.host + "/api/state/stream");
    ws.onmessage = function(evt) {
        var msg = JSON.parse(evt.data);
        if (msg.version > version && msg.state.pending === 0) {
            location.reload();
        }
    };
});
</script>
</head>
<body>
<h1>{{.Title}}</h1>
<nav>
<form method="post" action="/select"><button name="category" value="{{.All}}"{{if .State.IsChosen .All}} class="chosen"{{end}}>{{.All}}</button></form>
{{range .State.Categories}}<form method="post" action="/select"><button name="category" value="{{.}}"{{if $.State.IsChosen .}} class="chosen"{{end}}>{{.}}</button></form>
{{end}}</nav>
{{if gt .State.Pending 0}}<p class="status">Loading cards…</p>{{end}}
{{with .State.LastError}}<p class="error">Could not load cards: {{.}}</p>{{end}}
{{if .State.FlashCards}}<ol>
{{range .State.FlashCards}}<li><p><strong>{{.Summary}}</strong> <em>{{.Category}}</em></p>
<ul>{{range .Answers}}<li{{if .Correct}} class="correct"{{end}}>{{.Text}}</li>{{end}}</ul></li>
{{end}}</ol>{{else}}<p>No cards.</p>{{end}}
</body>
</html>
`))

type pageData struct {
	Title string
	All   domain.Category
	State browser.State
}

// ViewHandler renders the browser page and handles its category buttons.
type ViewHandler struct {
	browser CardBrowser
	title   string
	logger  *slog.Logger
}

// NewViewHandler creates a new ViewHandler
func NewViewHandler(browser CardBrowser, title string, logger *slog.Logger) *ViewHandler {
	if browser == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("browser cannot be nil for ViewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ViewHandler")
	}
	if strings.TrimSpace(title) == "" {
		title = "Flash cards"
	}

	return &ViewHandler{
		browser: browser,
		title:   title,
		logger:  logger.With(slog.String("component", "view_handler")),
	}
}

// Page handles GET / requests.
func (h *ViewHandler) Page(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Title: h.title,
		All:   domain.CategoryAll,
		State: h.browser.State(),
	})
	if err != nil {
		log.Error("failed to render browser page", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug("failed to write browser page", slog.String("error", err.Error()))
	}
}

// Select handles POST /select requests from the page's category buttons.
// An empty category or "All" loads every card.
func (h *ViewHandler) Select(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid form", err)
		return
	}

	category := domain.Category(strings.TrimSpace(r.PostFormValue("category")))

	var err error
	if category == "" || category == domain.CategoryAll {
		_, err = h.browser.GetAllCards(r.Context())
	} else {
		req := shared.CategoryRequest{Category: string(category)}
		if verr := shared.ValidateRequest(&req); verr != nil {
			err = domain.NewValidationError("category", "must be at most 128 characters", domain.ErrValidation)
		} else {
			_, err = h.browser.GetCategoryCards(r.Context(), category)
		}
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
