package scouting

import (
	"errors"
	"net/url"

	"scouting-hub/core/logger"
	"scouting-hub/feature/scouting/drivesync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for scouting data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the scouting routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/teams")
	group.Get("/", h.HandleTeams)
	group.Get("/:team/players", h.HandlePlayers)
	group.Get("/:team/players/:slug", h.HandlePlayer)
	group.Get("/:team/report", h.HandleReport)
	group.Get("/:team/images/:file", h.HandleImage)
	group.Post("/:team/sync", h.HandleSync)
	group.Delete("/:team/cache", h.HandlePurge)
	group.Get("/:team/status", h.HandleStatus)
}

// HandleTeams lists the team folders.
// @Summary List Teams
// @Description Lists the team folders of remote storage, or the cached teams when storage is unavailable.
// @Tags scouting
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Default team and team list"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /teams [get]
func (h *Handler) HandleTeams(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	teams, err := h.service.Teams(c.Context())
	if err != nil {
		l.Error("Team listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"default": h.service.DefaultTeam(),
		"teams":   teams,
	})
}

// HandlePlayers returns the reconciled players of a team.
// @Summary List Players
// @Description Reconciles the cached player images with the roster. The first request for a team triggers a sync pass.
// @Tags scouting
// @Produce json
// @Security ApiKeyAuth
// @Param team path string true "Team name, slug or 'default'"
// @Param scope query string false "Roster scope" Enums(team, all)
// @Param force query boolean false "Purge the team cache and download again"
// @Success 200 {object} map[string]interface{} "Players"
// @Router /teams/{team}/players [get]
func (h *Handler) HandlePlayers(c *fiber.Ctx) error {
	teamName := param(c, "team")
	scope := drivesync.ParseScope(c.Query("scope"))
	force := c.QueryBool("force")

	players := h.service.Players(c.Context(), teamName, scope, force)

	logger.WithRayID(h.service.logger, c).Info("Players served",
		zap.String("team", teamName),
		zap.String("scope", string(scope)),
		zap.Int("count", len(players)))

	return c.JSON(fiber.Map{
		"team":    teamName,
		"scope":   scope,
		"count":   len(players),
		"players": players,
	})
}

// HandlePlayer returns one player by slug or image file name.
// @Summary Get Player
// @Tags scouting
// @Produce json
// @Security ApiKeyAuth
// @Param team path string true "Team name, slug or 'default'"
// @Param slug path string true "Player slug (e.g. 'diaz_zarzuela_francisco')"
// @Success 200 {object} map[string]interface{} "Player"
// @Failure 404 {object} map[string]string "Player not found"
// @Router /teams/{team}/players/{slug} [get]
func (h *Handler) HandlePlayer(c *fiber.Ctx) error {
	p, err := h.service.Player(c.Context(), param(c, "team"), param(c, "slug"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

// HandleReport streams the team report pdf.
// @Summary Get Team Report
// @Tags scouting
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param team path string true "Team name, slug or 'default'"
// @Success 200 {file} file "Team report"
// @Failure 404 {object} map[string]string "Report not cached"
// @Router /teams/{team}/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	path, err := h.service.Report(c.Context(), param(c, "team"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Type("pdf")
	return c.SendFile(path)
}

// HandleImage streams a cached player image.
// @Summary Get Player Image
// @Tags scouting
// @Produce png,jpeg
// @Security ApiKeyAuth
// @Param team path string true "Team name, slug or 'default'"
// @Param file path string true "Image file name"
// @Success 200 {file} file "Image"
// @Failure 404 {object} map[string]string "Image not cached"
// @Router /teams/{team}/images/{file} [get]
func (h *Handler) HandleImage(c *fiber.Ctx) error {
	path, err := h.service.PlayerImage(c.Context(), param(c, "team"), param(c, "file"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.SendFile(path)
}

// HandleSync runs a sync pass.
// @Summary Sync Team
// @Description Downloads the team report and player assets into the local cache. Answers 503 when the pass produced nothing.
// @Tags scouting
// @Produce json
// @Security ApiKeyAuth
// @Param team path string true "Team name, slug or 'default'"
// @Param force query boolean false "Purge the team cache first"
// @Success 200 {object} drivesync.Result
// @Failure 503 {object} drivesync.Result "Degraded pass"
// @Router /teams/{team}/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	teamName := param(c, "team")
	force := c.QueryBool("force")

	l.Info("Triggering sync", zap.String("team", teamName), zap.Bool("force", force))
	res := h.service.Sync(c.Context(), teamName, force)

	status := fiber.StatusOK
	if !res.Success {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(res)
}

// HandlePurge deletes the cached files of a team.
// @Summary Purge Team Cache
// @Tags scouting
// @Produce json
// @Security ApiKeyAuth
// @Param team path string true "Team name, slug or 'default'"
// @Success 200 {object} map[string]string "Purged"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /teams/{team}/cache [delete]
func (h *Handler) HandlePurge(c *fiber.Ctx) error {
	teamName := param(c, "team")
	if err := h.service.Purge(c.Context(), teamName); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "purged",
		"team":   teamName,
	})
}

// HandleStatus reports what is cached for a team.
// @Summary Team Status
// @Tags scouting
// @Produce json
// @Security ApiKeyAuth
// @Param team path string true "Team name, slug or 'default'"
// @Success 200 {object} drivesync.Status
// @Router /teams/{team}/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status(c.Context(), param(c, "team")))
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrPlayerNotFound), errors.Is(err, ErrReportNotFound), errors.Is(err, ErrImageNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// param returns a path parameter with percent-escapes decoded.
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
