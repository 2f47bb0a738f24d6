package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Amdaxx/podcast/application/ports/inbound"
	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/channel_utils"
	"github.com/Amdaxx/podcast/domain"
	"github.com/Amdaxx/podcast/infrastructure/gin_interface/dto"
	"github.com/Amdaxx/podcast/middleware"
	"github.com/gin-gonic/gin"
)

const heartbeatInterval = 15 * time.Second

type DraftController interface {
	RegisterRoutes(g *gin.Engine)
}

type draftController struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	workflow   inbound.DraftWorkflowPort
}

func NewDraftController(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	workflow inbound.DraftWorkflowPort) DraftController {
	return &draftController{
		logger:     logger,
		workerPool: workerPool,
		workflow:   workflow,
	}
}

func (d *draftController) RegisterRoutes(g *gin.Engine) {
	g.POST("/drafts", d.CreateDraft)
	g.GET("/drafts/:id", d.GetDraft)
	g.PATCH("/drafts/:id", d.UpdateDraft)
	g.POST("/drafts/:id/voice", d.SelectVoice)
	g.POST("/drafts/:id/audio", d.GenerateAudio)
	g.POST("/drafts/:id/image", d.GenerateImage)
	g.POST("/drafts/:id/submit", d.Submit)
	g.GET("/drafts/:id/events", middleware.SSEHeaders(), d.StreamNotices)
}

func (d *draftController) CreateDraft(c *gin.Context) {
	draft, err := d.workflow.CreateDraft(c, inbound.CreateDraftParams{
		AuthorID:   c.GetString(middleware.ContextUserIDKey),
		AuthorName: c.GetString(middleware.ContextUserNameKey),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (d *draftController) GetDraft(c *gin.Context) {
	draft, err := d.workflow.GetDraft(c, c.Param("id"), c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		d.abortWithDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (d *draftController) UpdateDraft(c *gin.Context) {
	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := d.workflow.UpdateDraft(c, c.Param("id"), c.GetString(middleware.ContextUserIDKey), inbound.UpdateDraftParams{
		Title:       req.Title,
		Description: req.Description,
		VoicePrompt: req.VoicePrompt,
		ImagePrompt: req.ImagePrompt,
	})
	if err != nil {
		d.abortWithDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (d *draftController) SelectVoice(c *gin.Context) {
	var req dto.SelectVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voice, err := domain.ParseVoiceType(req.VoiceType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := d.workflow.SelectVoice(c, c.Param("id"), c.GetString(middleware.ContextUserIDKey), voice)
	if err != nil {
		d.abortWithDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SelectVoiceResponse{
		Draft:     *draft,
		SampleURL: voice.SampleURL(),
	})
}

func (d *draftController) GenerateAudio(c *gin.Context) {
	token, err := d.workflow.RequestAudio(c, c.Param("id"), c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		d.abortWithDraftError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.GenerationAcceptedResponse{
		DraftID: c.Param("id"),
		Token:   token,
	})
}

func (d *draftController) GenerateImage(c *gin.Context) {
	token, err := d.workflow.RequestImage(c, c.Param("id"), c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		d.abortWithDraftError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.GenerationAcceptedResponse{
		DraftID: c.Param("id"),
		Token:   token,
	})
}

func (d *draftController) Submit(c *gin.Context) {
	podcast, err := d.workflow.Submit(c, c.Param("id"), c.GetString(middleware.ContextUserIDKey))
	if err != nil {
		d.abortWithDraftError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SubmitResponse{
		PodcastID: podcast.ID,
		Message:   "Podcast Created",
	})
}

// StreamNotices pushes generation progress for a draft over SSE, with a
// periodic heartbeat so intermediaries keep the connection open.
func (d *draftController) StreamNotices(c *gin.Context) {
	draftID := c.Param("id")
	if _, err := d.workflow.GetDraft(c, draftID, c.GetString(middleware.ContextUserIDKey)); err != nil {
		d.abortWithDraftError(c, err)
		return
	}

	notices, cancel := d.workflow.Subscribe(draftID)
	defer cancel()

	hbCtx, stopHeartbeat := context.WithCancel(c.Request.Context())
	defer stopHeartbeat()

	heartbeats := make(chan domain.DraftNotice)
	err := d.workerPool.Submit(func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		defer close(heartbeats)
		for {
			select {
			case <-hbCtx.Done():
				return
			case <-ticker.C:
				select {
				case heartbeats <- domain.DraftNotice{DraftID: draftID, Type: domain.HeartbeatNotice}:
				case <-hbCtx.Done():
					return
				}
			}
		}
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	merged, err := channel_utils.MergeChannels(d.workerPool, notices, heartbeats)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// drain whatever is still in flight after the client goes away so
	// the merger can close down
	defer func() {
		if err := d.workerPool.Submit(func() {
			for range merged {
			}
		}); err != nil {
			d.logger.Error(err, "failed to drain notice stream")
		}
	}()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case notice, ok := <-merged:
			if !ok {
				return
			}
			payload, err := json.Marshal(notice)
			if err != nil {
				d.logger.Error(err, "failed to marshal draft notice")
				continue
			}
			if _, err := c.Writer.WriteString("data: " + string(payload) + "\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
			if notice.Type == domain.SubmittedNotice {
				return
			}
		}
	}
}

func (d *draftController) abortWithDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDraftNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotDraftOwner):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSubmitInProgress):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTitleTooShort),
		errors.Is(err, domain.ErrDescriptionTooShort),
		errors.Is(err, domain.ErrAssetsMissing),
		errors.Is(err, domain.ErrVoiceNotSelected),
		errors.Is(err, domain.ErrVoicePromptMissing),
		errors.Is(err, domain.ErrImagePromptMissing):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		d.logger.Error(err, "draft request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
