package httpapi

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync/atomic"

	"hrms-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur := h.CfgVal.Load().(config.Config)
	WriteData(w, "config", cur)
}

func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var incoming config.Config
	if err := dec.Decode(&incoming); err != nil {
		WriteJSON(w, http.StatusBadRequest, Envelope{Message: "invalid JSON: " + err.Error()})
		return
	}

	normalized, vr := config.NormalizeAndValidate(incoming)
	if !vr.OK() {
		// Structured errors so the UI can show them nicely
		WriteJSON(w, http.StatusBadRequest, Envelope{Message: "config invalid", Data: vr})
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteJSON(w, http.StatusBadRequest, Envelope{Message: err.Error()})
		return
	}

	saved, err := h.LoadCfg()
	if err != nil {
		WriteJSON(w, http.StatusInternalServerError, Envelope{Message: "saved but reload failed: " + err.Error()})
		return
	}
	h.CfgVal.Store(saved)
	// API client settings take effect on next engine start.
	WriteData(w, "config saved", saved)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.UserCfgPath)
	WriteData(w, "config path", map[string]any{"path": abs})
}
