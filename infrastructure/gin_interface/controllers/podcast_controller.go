package controllers

import (
	"errors"
	"net/http"

	"github.com/Amdaxx/podcast/application/ports/inbound"
	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/domain"
	"github.com/Amdaxx/podcast/infrastructure/gin_interface/dto"
	"github.com/Amdaxx/podcast/middleware"
	"github.com/gin-gonic/gin"
)

type PodcastController interface {
	RegisterRoutes(g *gin.Engine)
}

type podcastController struct {
	logger  outbound.LoggerPort
	queries inbound.PodcastQueryPort
}

func NewPodcastController(logger outbound.LoggerPort, queries inbound.PodcastQueryPort) PodcastController {
	return &podcastController{
		logger:  logger,
		queries: queries,
	}
}

func (p *podcastController) RegisterRoutes(g *gin.Engine) {
	g.GET("/podcasts", p.Discover)
	g.GET("/podcasts/:id", p.GetDetail)
	g.GET("/podcasts/:id/similar", p.GetSimilar)
	g.GET("/podcasters/top", p.GetTopPodcasters)
	g.GET("/voices", p.GetVoices)
}

func (p *podcastController) Discover(c *gin.Context) {
	podcasts, err := p.queries.Discover(c, c.Query("search"))
	if err != nil {
		p.logger.Error(err, "discover query failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, podcasts)
}

func (p *podcastController) GetDetail(c *gin.Context) {
	detail, err := p.queries.GetDetail(c, c.Param("id"), c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		p.abortWithQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (p *podcastController) GetSimilar(c *gin.Context) {
	podcasts, err := p.queries.Similar(c, c.Param("id"))
	if err != nil {
		p.abortWithQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, podcasts)
}

func (p *podcastController) GetTopPodcasters(c *gin.Context) {
	stats, err := p.queries.TopPodcasters(c)
	if err != nil {
		p.logger.Error(err, "top podcasters query failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (p *podcastController) GetVoices(c *gin.Context) {
	voices := make([]dto.Voice, 0, len(domain.VoiceTypes()))
	for _, voice := range domain.VoiceTypes() {
		voices = append(voices, dto.Voice{
			VoiceType: string(voice),
			SampleURL: voice.SampleURL(),
		})
	}
	c.JSON(http.StatusOK, dto.VoicesResponse{Voices: voices})
}

func (p *podcastController) abortWithQueryError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrPodcastNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	p.logger.Error(err, "podcast query failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
