package services

import (
	"context"
	"sync"
	"time"

	"github.com/Amdaxx/podcast/application/ports/inbound"
	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/domain"
	"github.com/google/uuid"
)

const (
	audioContentType = "audio/mpeg"
	imageContentType = "image/png"
	noticeBuffer     = 16
)

type draftWorkflow struct {
	logger         outbound.LoggerPort
	workerPool     outbound.TaskDispatcher
	audioGenerator outbound.AudioGeneratorPort
	imageGenerator outbound.ImageGeneratorPort
	mediaStore     outbound.MediaStorePort
	repository     outbound.PodcastRepositoryPort
	draftCache     outbound.DraftCachePort

	// mu serializes reducer applications so a generation completion and
	// a concurrent field edit cannot interleave between load and save.
	mu          sync.Mutex
	subMu       sync.Mutex
	subscribers map[string]map[uint64]chan domain.DraftNotice
	nextSubID   uint64
}

func NewDraftWorkflow(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	audioGenerator outbound.AudioGeneratorPort, imageGenerator outbound.ImageGeneratorPort,
	mediaStore outbound.MediaStorePort, repository outbound.PodcastRepositoryPort,
	draftCache outbound.DraftCachePort) inbound.DraftWorkflowPort {
	return &draftWorkflow{
		logger:         logger,
		workerPool:     workerPool,
		audioGenerator: audioGenerator,
		imageGenerator: imageGenerator,
		mediaStore:     mediaStore,
		repository:     repository,
		draftCache:     draftCache,
		subscribers:    make(map[string]map[uint64]chan domain.DraftNotice),
	}
}

func (w *draftWorkflow) CreateDraft(ctx context.Context, params inbound.CreateDraftParams) (*domain.Draft, error) {
	draft := domain.Draft{
		ID:         uuid.NewString(),
		AuthorID:   params.AuthorID,
		AuthorName: params.AuthorName,
		CreatedAt:  time.Now().UTC(),
	}
	if err := w.draftCache.Save(ctx, draft); err != nil {
		w.logger.Error(err, "failed to save new draft")
		return nil, err
	}
	w.logger.DebugWithFields("draft created", map[string]interface{}{
		"draftID": draft.ID,
		"author":  draft.AuthorID,
	})
	return &draft, nil
}

func (w *draftWorkflow) GetDraft(ctx context.Context, draftID, userID string) (*domain.Draft, error) {
	return w.load(ctx, draftID, userID)
}

func (w *draftWorkflow) UpdateDraft(ctx context.Context, draftID, userID string, params inbound.UpdateDraftParams) (*domain.Draft, error) {
	var events []domain.DraftEvent
	if params.Title != nil {
		events = append(events, domain.TitleSet{Title: *params.Title})
	}
	if params.Description != nil {
		events = append(events, domain.DescriptionSet{Description: *params.Description})
	}
	if params.VoicePrompt != nil {
		events = append(events, domain.VoicePromptSet{Prompt: *params.VoicePrompt})
	}
	if params.ImagePrompt != nil {
		events = append(events, domain.ImagePromptSet{Prompt: *params.ImagePrompt})
	}
	return w.apply(ctx, draftID, userID, events...)
}

func (w *draftWorkflow) SelectVoice(ctx context.Context, draftID, userID string, voice domain.VoiceType) (*domain.Draft, error) {
	return w.apply(ctx, draftID, userID, domain.VoiceSelected{Voice: voice})
}

func (w *draftWorkflow) RequestAudio(ctx context.Context, draftID, userID string) (uint64, error) {
	w.mu.Lock()
	draft, err := w.loadLocked(ctx, draftID, userID)
	if err != nil {
		w.mu.Unlock()
		return 0, err
	}
	if err := draft.CanGenerateAudio(); err != nil {
		w.mu.Unlock()
		return 0, err
	}
	updated := domain.Apply(*draft, domain.AudioRequested{})
	if err := w.draftCache.Save(ctx, updated); err != nil {
		w.mu.Unlock()
		return 0, err
	}
	w.mu.Unlock()

	token := updated.AudioSeq
	prompt := updated.VoicePrompt
	voice := updated.VoiceType

	err = w.workerPool.Submit(func() {
		w.generateAudio(draftID, userID, token, prompt, voice)
	})
	if err != nil {
		w.logger.Error(err, "failed to dispatch audio generation")
		return 0, err
	}
	return token, nil
}

func (w *draftWorkflow) RequestImage(ctx context.Context, draftID, userID string) (uint64, error) {
	w.mu.Lock()
	draft, err := w.loadLocked(ctx, draftID, userID)
	if err != nil {
		w.mu.Unlock()
		return 0, err
	}
	if err := draft.CanGenerateImage(); err != nil {
		w.mu.Unlock()
		return 0, err
	}
	updated := domain.Apply(*draft, domain.ImageRequested{})
	if err := w.draftCache.Save(ctx, updated); err != nil {
		w.mu.Unlock()
		return 0, err
	}
	w.mu.Unlock()

	token := updated.ImageSeq
	prompt := updated.ImagePrompt

	err = w.workerPool.Submit(func() {
		w.generateImage(draftID, userID, token, prompt)
	})
	if err != nil {
		w.logger.Error(err, "failed to dispatch image generation")
		return 0, err
	}
	return token, nil
}

func (w *draftWorkflow) Submit(ctx context.Context, draftID, userID string) (*domain.Podcast, error) {
	w.mu.Lock()
	draft, err := w.loadLocked(ctx, draftID, userID)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if err := draft.CanSubmit(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	updated := domain.Apply(*draft, domain.SubmitStarted{})
	if err := w.draftCache.Save(ctx, updated); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.mu.Unlock()

	podcast := updated.Record(uuid.NewString(), time.Now().UTC())
	if err := w.repository.Create(ctx, podcast); err != nil {
		w.logger.ErrorWithFields(err, "failed to create podcast", map[string]interface{}{
			"draftID": draftID,
		})
		if _, applyErr := w.apply(ctx, draftID, userID, domain.SubmitFailed{}); applyErr != nil {
			w.logger.Error(applyErr, "failed to reset submitting flag")
		}
		return nil, err
	}

	if _, err := w.apply(ctx, draftID, userID, domain.SubmitSucceeded{}); err != nil {
		w.logger.Error(err, "failed to mark draft submitted")
	}
	if err := w.draftCache.Delete(ctx, draftID); err != nil {
		w.logger.Error(err, "failed to delete submitted draft")
	}
	w.publish(domain.DraftNotice{
		DraftID: draftID,
		Type:    domain.SubmittedNotice,
		Message: "Podcast Created",
	})
	w.logger.InfoWithFields("podcast created", map[string]interface{}{
		"podcastID": podcast.ID,
		"author":    podcast.AuthorID,
		"voiceType": podcast.VoiceType,
	})
	return &podcast, nil
}

func (w *draftWorkflow) Subscribe(draftID string) (<-chan domain.DraftNotice, func()) {
	w.subMu.Lock()
	defer w.subMu.Unlock()

	if w.subscribers[draftID] == nil {
		w.subscribers[draftID] = make(map[uint64]chan domain.DraftNotice)
	}
	w.nextSubID++
	id := w.nextSubID
	ch := make(chan domain.DraftNotice, noticeBuffer)
	w.subscribers[draftID][id] = ch

	cancel := func() {
		w.subMu.Lock()
		defer w.subMu.Unlock()
		if subs, ok := w.subscribers[draftID]; ok {
			if existing, ok := subs[id]; ok {
				delete(subs, id)
				close(existing)
			}
			if len(subs) == 0 {
				delete(w.subscribers, draftID)
			}
		}
	}
	return ch, cancel
}

func (w *draftWorkflow) generateAudio(draftID, userID string, token uint64, prompt string, voice domain.VoiceType) {
	ctx := context.Background()

	audio, err := w.audioGenerator.Generate(ctx, outbound.GenerateAudioRequest{
		VoicePrompt: prompt,
		Voice:       voice,
	})
	if err != nil {
		w.noticeFailure(draftID, domain.AudioFailedNotice, token, err)
		return
	}

	stored, err := w.mediaStore.Save(ctx, outbound.StoreMediaRequest{
		UserID:      userID,
		DraftID:     draftID,
		Kind:        domain.AudioAsset,
		Content:     audio.Content,
		ContentType: audioContentType,
	})
	if err != nil {
		w.noticeFailure(draftID, domain.AudioFailedNotice, token, err)
		return
	}

	updated, err := w.apply(ctx, draftID, userID, domain.AudioGenerated{
		Seq:      token,
		URL:      stored.URL,
		Key:      stored.Key,
		Duration: audio.Duration,
	})
	if err != nil {
		w.noticeFailure(draftID, domain.AudioFailedNotice, token, err)
		return
	}
	if updated.AudioSeq != token {
		w.logger.DebugWithFields("discarded stale audio response", map[string]interface{}{
			"draftID": draftID,
			"token":   token,
			"latest":  updated.AudioSeq,
		})
		w.publish(domain.DraftNotice{DraftID: draftID, Type: domain.AudioStaleNotice, Seq: token})
		return
	}
	w.publish(domain.DraftNotice{
		DraftID:  draftID,
		Type:     domain.AudioReadyNotice,
		Seq:      token,
		URL:      stored.URL,
		Duration: audio.Duration,
	})
}

func (w *draftWorkflow) generateImage(draftID, userID string, token uint64, prompt string) {
	ctx := context.Background()

	content, err := w.imageGenerator.Generate(ctx, prompt)
	if err != nil {
		w.noticeFailure(draftID, domain.ImageFailedNotice, token, err)
		return
	}

	stored, err := w.mediaStore.Save(ctx, outbound.StoreMediaRequest{
		UserID:      userID,
		DraftID:     draftID,
		Kind:        domain.ImageAsset,
		Content:     content,
		ContentType: imageContentType,
	})
	if err != nil {
		w.noticeFailure(draftID, domain.ImageFailedNotice, token, err)
		return
	}

	updated, err := w.apply(ctx, draftID, userID, domain.ImageGenerated{
		Seq: token,
		URL: stored.URL,
		Key: stored.Key,
	})
	if err != nil {
		w.noticeFailure(draftID, domain.ImageFailedNotice, token, err)
		return
	}
	if updated.ImageSeq != token {
		w.logger.DebugWithFields("discarded stale image response", map[string]interface{}{
			"draftID": draftID,
			"token":   token,
			"latest":  updated.ImageSeq,
		})
		w.publish(domain.DraftNotice{DraftID: draftID, Type: domain.ImageStaleNotice, Seq: token})
		return
	}
	w.publish(domain.DraftNotice{
		DraftID: draftID,
		Type:    domain.ImageReadyNotice,
		Seq:     token,
		URL:     stored.URL,
	})
}

func (w *draftWorkflow) noticeFailure(draftID string, noticeType domain.NoticeType, token uint64, err error) {
	w.logger.ErrorWithFields(err, "generation step failed", map[string]interface{}{
		"draftID": draftID,
		"notice":  noticeType,
		"token":   token,
	})
	w.publish(domain.DraftNotice{
		DraftID: draftID,
		Type:    noticeType,
		Seq:     token,
		Message: err.Error(),
	})
}

func (w *draftWorkflow) publish(notice domain.DraftNotice) {
	w.subMu.Lock()
	defer w.subMu.Unlock()
	for _, ch := range w.subscribers[notice.DraftID] {
		select {
		case ch <- notice:
		default:
			// slow listener, drop rather than block the pipeline
		}
	}
}

// apply loads the draft, runs the events through the reducer and saves
// the result as one step under the workflow lock.
func (w *draftWorkflow) apply(ctx context.Context, draftID, userID string, events ...domain.DraftEvent) (*domain.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	draft, err := w.loadLocked(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}
	updated := *draft
	for _, event := range events {
		updated = domain.Apply(updated, event)
	}
	if err := w.draftCache.Save(ctx, updated); err != nil {
		w.logger.Error(err, "failed to save draft")
		return nil, err
	}
	return &updated, nil
}

func (w *draftWorkflow) load(ctx context.Context, draftID, userID string) (*domain.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loadLocked(ctx, draftID, userID)
}

func (w *draftWorkflow) loadLocked(ctx context.Context, draftID, userID string) (*domain.Draft, error) {
	draft, err := w.draftCache.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.AuthorID != userID {
		return nil, domain.ErrNotDraftOwner
	}
	return draft, nil
}
