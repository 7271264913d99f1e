// internal/server/handlers.go
package server

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mwiater/ragbench/internal/metrics"
	"github.com/mwiater/ragbench/internal/report"
	"github.com/mwiater/ragbench/internal/table"
)

// DatasetInfo describes a loaded dataset in /api/datasets.
type DatasetInfo struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	BenchmarkDate string    `json:"benchmark_date"`
	Databases     []string  `json:"databases"`
	RawResults    int       `json:"raw_results"`
	Warnings      []string  `json:"warnings,omitempty"`
	LoadedAt      time.Time `json:"loaded_at"`
}

func (s *Server) handleDefaultDashboard(c echo.Context) error {
	return s.renderDashboard(c, s.store.Default(), "/")
}

func (s *Server) handleDashboard(c echo.Context) error {
	name := c.Param("name")
	return s.renderDashboard(c, name, "/datasets/"+name)
}

func (s *Server) renderDashboard(c echo.Context, name, base string) error {
	ds, err := s.store.Get(name)
	if err != nil {
		return err
	}
	state, err := report.ParseState(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if state.Sort(report.ResultsTable) == nil && s.cfg.DefaultSort != nil {
		state = state.WithSort(report.ResultsTable, s.cfg.DefaultSort)
	}

	dash, err := report.Build(ds.Doc, state, report.Options{
		Title:       s.cfg.Title,
		Dataset:     ds.Name,
		Locale:      s.cfg.Locale,
		Interactive: true,
		BasePath:    base,
		Datasets:    s.store.Names(),
	})
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := report.RenderHTML(&buf, dash); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleListDatasets(c echo.Context) error {
	list := s.store.List()
	out := make([]DatasetInfo, 0, len(list))
	for _, ds := range list {
		out = append(out, DatasetInfo{
			Name:          ds.Name,
			Path:          ds.Path,
			BenchmarkDate: ds.Doc.Metadata.BenchmarkDate,
			Databases:     ds.Doc.Databases(),
			RawResults:    len(ds.Doc.SpeedTest.RawResults),
			Warnings:      ds.Warnings,
			LoadedAt:      ds.LoadedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// handleResults projects one table. Query parameters: kind, q, db, sort, dir.
func (s *Server) handleResults(c echo.Context) error {
	ds, err := s.store.Get(c.Param("name"))
	if err != nil {
		return err
	}
	kind, err := report.ParseKind(c.QueryParam("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var sortCfg *table.SortConfig
	if key := strings.TrimSpace(c.QueryParam("sort")); key != "" {
		dir, err := table.ParseDirection(c.QueryParam("dir"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		sortCfg = &table.SortConfig{Key: key, Direction: dir}
	}

	proj, err := report.Project(ds.Doc, report.Query{
		Kind:     kind,
		Search:   c.QueryParam("q"),
		Database: c.QueryParam("db"),
		Sort:     sortCfg,
		Locale:   s.cfg.Locale,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proj)
}

func (s *Server) handleWinners(c echo.Context) error {
	ds, err := s.store.Get(c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics.Scoreboard(ds.Doc))
}

func (s *Server) handleFixture(c echo.Context) error {
	ds, err := s.store.Get(c.Param("name"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, ds.Raw)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"datasets": len(s.store.Names()),
	})
}
