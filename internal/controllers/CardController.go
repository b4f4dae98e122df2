package controllers

import (
	json "github.com/goccy/go-json"
	"net/http"
	"stampcard/internal/providers"
	"stampcard/internal/services"
	"strconv"
	"strings"
)

type CardController struct {
	logger  providers.Logger
	service services.StampCardServiceInterface
	cache   providers.CacheProviderInterface
}

func NewCardController(logger providers.Logger, service services.StampCardServiceInterface, cache providers.CacheProviderInterface) *CardController {
	return &CardController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// Page serves the rendered card, cached per state version.
func (cc *CardController) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if data, ok := cc.cache.Get(cc.service.Version()); ok {
		writeHTML(w, data)
		return
	}

	data, version, err := cc.service.RenderPage()
	if err != nil {
		cc.logger.Errorf(providers.TypeGet, "Render error: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	cc.cache.Set(version, data)
	writeHTML(w, data)
}

func (cc *CardController) State(w http.ResponseWriter, r *http.Request) {
	cc.writeSnapshot(w, http.StatusOK)
}

// Stamp handles a slot click: POST /stamp?index=N.
func (cc *CardController) Stamp(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := cc.service.FillStamp(index); err != nil {
		cc.logger.Errorf(providers.TypePost, "Fill of slot %d: %s", index, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	cc.respond(w, r)
}

// Undo handles an undo click: POST /undo?ts=T.
func (cc *CardController) Undo(w http.ResponseWriter, r *http.Request) {
	ts, err := strconv.ParseInt(r.URL.Query().Get("ts"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := cc.service.Undo(ts); err != nil {
		cc.logger.Errorf(providers.TypePost, "Undo of entry %d: %s", ts, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	cc.respond(w, r)
}

// respond answers API clients with the snapshot and sends form posts back
// to the page.
func (cc *CardController) respond(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		cc.writeSnapshot(w, http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (cc *CardController) writeSnapshot(w http.ResponseWriter, status int) {
	gson, err := json.Marshal(cc.service.Snapshot())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeHTML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
