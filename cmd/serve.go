package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/YagYk/FairDeal/internal/model"
	"github.com/YagYk/FairDeal/internal/pipeline"
	"github.com/YagYk/FairDeal/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis API",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPipeline(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer cleanup()

		st, err := store.Open(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(middleware.Timeout(120 * time.Second))
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Post("/api/v1/analyze", handleAnalyze(p))
		r.Get("/api/v1/runs", handleListRuns(st))
		r.Get("/api/v1/runs/{id}", handleGetRun(st))
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		zap.L().Info("serve: listening", zap.String("addr", addr))

		srv := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return eris.Wrap(srv.ListenAndServe(), "serve: http server")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type analyzeRequest struct {
	Filename string        `json:"filename"`
	Text     string        `json:"text"`
	Context  model.Context `json:"context"`
}

func handleAnalyze(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		doc := model.NewDocument(req.Filename, req.Text)
		result, err := p.Analyze(r.Context(), doc, req.Context)
		if err != nil {
			zap.L().Error("serve: analysis failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "analysis failed")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func handleListRuns(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := st.ListRuns(r.Context(), 50)
		if err != nil {
			zap.L().Error("serve: list runs failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}
		writeJSON(w, http.StatusOK, runs)
	}
}

func handleGetRun(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := st.GetRun(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "run not found")
				return
			}
			zap.L().Error("serve: get run failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("serve: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
