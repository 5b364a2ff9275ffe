/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Command audit runs the consent engine offline against a saved page and a
// cookie header string, and reports what the engine would block, classify
// and signal. Useful when tuning category overrides and gate rules.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/wso2/identity-cookie-consent/internal/banner"
	"github.com/wso2/identity-cookie-consent/internal/consent/service"
	"github.com/wso2/identity-cookie-consent/internal/consent/store"
	"github.com/wso2/identity-cookie-consent/internal/consentmode"
	cookiemodel "github.com/wso2/identity-cookie-consent/internal/cookies/model"
	cookiesvc "github.com/wso2/identity-cookie-consent/internal/cookies/service"
	"github.com/wso2/identity-cookie-consent/internal/export"
	"github.com/wso2/identity-cookie-consent/internal/gate"
	"github.com/wso2/identity-cookie-consent/internal/system/config"
	errors2 "github.com/wso2/identity-cookie-consent/internal/system/errors"
	"github.com/wso2/identity-cookie-consent/internal/system/events"
	"github.com/wso2/identity-cookie-consent/internal/system/log"
)

type report struct {
	BannerState    string              `json:"banner_state"`
	GateMode       string              `json:"gate_mode"`
	CookieSummary  cookiesvc.Summary   `json:"cookie_summary"`
	BlockedScripts []blockedScript     `json:"blocked_scripts"`
	DataLayer      []consentmode.Event `json:"data_layer"`
}

type blockedScript struct {
	Src      string `json:"src"`
	Category string `json:"category"`
}

func main() {
	home := flag.String("home", ".", "Path to the engine home directory")
	configFile := flag.String("config", "config/deployment.yaml", "Deployment file relative to home")
	pageFile := flag.String("page", "", "Path to the HTML page to audit")
	cookieHeader := flag.String("cookies", "", "Raw Cookie header string to classify")
	outFile := flag.String("out", "", "Optional path for the gated page rendering")
	flag.Parse()

	if *pageFile == "" {
		fmt.Fprintln(os.Stderr, "usage: audit -page page.html [-cookies \"a=1; b=2\"]")
		os.Exit(2)
	}

	envFiles, err := filepath.Glob(filepath.Join(*home, "config", "*.env"))
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	cfg, err := config.LoadConfig(*home, *configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Log.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	storage, cleanup, err := openStorage(cfg)
	if err != nil {
		logger.Error("Failed to initialize the storage backend", log.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	queue := &consentmode.Queue{}
	bridge := consentmode.NewBridge(queue, cfg.ConsentMode.WaitForUpdateMs)
	exporter := export.NewExporter(cfg.Export.Endpoint,
		time.Duration(cfg.Export.TimeoutMs)*time.Millisecond, []byte(cfg.Export.SigningKey))
	consentStore := service.NewConsentStore(storage, bridge, exporter, events.NewBus())

	categories := cookiemodel.Merge(cookiemodel.DefaultCategories(), cfg.CookieCategories)
	scanner := cookiesvc.NewScanner(categories)

	page, err := os.Open(*pageFile)
	if err != nil {
		logger.Error("Failed to open the page", log.Error(err))
		os.Exit(1)
	}
	doc, err := gate.ParseDocument(page)
	_ = page.Close()
	if err != nil {
		logger.Error("Failed to parse the page",
			log.Error(errors2.NewServerError(errors2.PARSE_DOCUMENT, err)))
		os.Exit(1)
	}

	scriptGate := gate.NewScriptGate(doc, cfg.ScriptGate.Domains, consentStore.Current)
	controller := banner.NewController(consentStore, scriptGate, scanner,
		func() string { return *cookieHeader },
		time.Duration(cfg.Banner.ResolveDelayMs)*time.Millisecond)

	mode := scriptGate.Install()
	state := controller.Boot()

	out := report{
		BannerState:    state.String(),
		GateMode:       mode.String(),
		CookieSummary:  controller.DetailsSummary(),
		BlockedScripts: collectBlocked(doc),
		DataLayer:      queue.Snapshot(),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		logger.Error("Failed to write the report", log.Error(err))
		os.Exit(1)
	}

	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			logger.Error("Failed to create the output page", log.Error(err))
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		if err := doc.Render(f); err != nil {
			logger.Error("Failed to render the gated page", log.Error(err))
			os.Exit(1)
		}
	}
}

func openStorage(cfg *config.Config) (store.Storage, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		s, err := store.NewSQLiteStorage(cfg.Storage.Path)
		if err != nil {
			return nil, nil, errors2.NewServerError(errors2.INIT_STORAGE_BACKEND, err)
		}
		return s, func() { _ = s.Close() }, nil
	default:
		s, err := store.NewFileStorage(afero.NewOsFs(), cfg.Storage.Path)
		if err != nil {
			return nil, nil, errors2.NewServerError(errors2.INIT_STORAGE_BACKEND, err)
		}
		return s, func() {}, nil
	}
}

func collectBlocked(doc *gate.HTMLDocument) []blockedScript {
	blocked := make([]blockedScript, 0)
	for _, el := range doc.Scripts() {
		src, ok := el.Attr(gate.AttrBlockedSrc)
		if !ok {
			continue
		}
		category, _ := el.Attr(gate.AttrCategory)
		blocked = append(blocked, blockedScript{Src: src, Category: category})
	}
	return blocked
}
