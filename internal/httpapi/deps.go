package httpapi

import (
	"sync/atomic"

	"hrms-engine/internal/app"
	"hrms-engine/internal/config"
)

type Deps struct {
	App *app.App

	// Atomic store for the reloadable engine config.
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
