package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"easyfindshub/internal/editor"
	apperrors "easyfindshub/internal/errors"
	"easyfindshub/internal/metrics"
	"easyfindshub/internal/model"
)

// DraftPatch carries the form fields a client changed. Nil fields are left alone.
type DraftPatch struct {
	Title    *string         `json:"title,omitempty"`
	Category *model.Category `json:"category,omitempty"`
	Excerpt  *string         `json:"excerpt,omitempty"`
	Tags     *string         `json:"tags,omitempty"`
}

// EditorState is what the toolbar needs after each command.
type EditorState struct {
	Markup    string               `json:"markup"`
	Selection editor.Selection     `json:"selection"`
	Active    editor.ActiveFormats `json:"active"`
}

// DraftState is a snapshot of one session's article form.
type DraftState struct {
	model.ArticleDraft
	ImagePending bool        `json:"image_pending"`
	Submitting   bool        `json:"submitting"`
	Editor       EditorState `json:"editor"`
}

// Previewer renders a draft snapshot.
type Previewer interface {
	Render(draft model.ArticleDraft) (string, error)
}

// DraftService owns the article form of every signed-in session.
type DraftService interface {
	Get(sessionID uuid.UUID) DraftState
	UpdateFields(sessionID uuid.UUID, patch DraftPatch) DraftState
	StageImage(sessionID uuid.UUID, fileName string, data []byte) DraftState
	ClearImage(sessionID uuid.UUID) DraftState
	WaitImage(ctx context.Context, sessionID uuid.UUID) error
	ApplyEditorCommand(sessionID uuid.UUID, cmd editor.Command) (EditorState, error)
	Preview(sessionID uuid.UUID) (string, error)
	Submit(ctx context.Context, sessionID uuid.UUID) (*model.Article, error)
	Discard(sessionID uuid.UUID)
}

type draft struct {
	mu         sync.Mutex
	fields     model.DraftFields
	content    string
	editor     *editor.Editor
	image      *ImageStage
	submitting bool
}

func newDraft() *draft {
	d := &draft{image: NewImageStage()}
	d.resetEditor()
	return d
}

// resetEditor puts content and editor back to their initial empty state.
func (d *draft) resetEditor() {
	d.content = ""
	d.editor = editor.New(editor.WithOnChange(func(markup string) {
		d.content = markup
	}))
}

func (d *draft) snapshot() model.ArticleDraft {
	return model.ArticleDraft{
		DraftFields: d.fields,
		Content:     d.content,
		StagedImage: d.image.Staged(),
	}
}

func (d *draft) editorState() EditorState {
	return EditorState{
		Markup:    d.content,
		Selection: d.editor.Selection(),
		Active:    d.editor.Active(),
	}
}

func (d *draft) state() DraftState {
	snap := d.snapshot()
	return DraftState{
		ArticleDraft: snap,
		ImagePending: snap.StagedImage != nil && !snap.StagedImage.PreviewReady(),
		Submitting:   d.submitting,
		Editor:       d.editorState(),
	}
}

type draftService struct {
	mu        sync.Mutex
	drafts    map[uuid.UUID]*draft
	validator *DraftValidator
	publisher PublishService
	previewer Previewer
}

// NewDraftService creates the per-session draft controller.
func NewDraftService(validator *DraftValidator, publisher PublishService, previewer Previewer) DraftService {
	return &draftService{
		drafts:    make(map[uuid.UUID]*draft),
		validator: validator,
		publisher: publisher,
		previewer: previewer,
	}
}

func (s *draftService) draft(sessionID uuid.UUID) *draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sessionID]
	if !ok {
		d = newDraft()
		s.drafts[sessionID] = d
	}
	return d
}

func (s *draftService) Get(sessionID uuid.UUID) DraftState {
	d := s.draft(sessionID)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state()
}

func (s *draftService) UpdateFields(sessionID uuid.UUID, patch DraftPatch) DraftState {
	d := s.draft(sessionID)
	d.mu.Lock()
	defer d.mu.Unlock()

	if patch.Title != nil {
		d.fields.Title = *patch.Title
	}
	if patch.Category != nil {
		d.fields.Category = *patch.Category
	}
	if patch.Excerpt != nil {
		d.fields.Excerpt = *patch.Excerpt
	}
	if patch.Tags != nil {
		d.fields.TagsRaw = *patch.Tags
	}
	return d.state()
}

func (s *draftService) StageImage(sessionID uuid.UUID, fileName string, data []byte) DraftState {
	d := s.draft(sessionID)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.image.SetImage(fileName, data)
	return d.state()
}

func (s *draftService) ClearImage(sessionID uuid.UUID) DraftState {
	d := s.draft(sessionID)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.image.Clear()
	return d.state()
}

// WaitImage blocks until the staged image preview is ready, if one is pending.
func (s *draftService) WaitImage(ctx context.Context, sessionID uuid.UUID) error {
	return s.draft(sessionID).image.Wait(ctx)
}

func (s *draftService) ApplyEditorCommand(sessionID uuid.UUID, cmd editor.Command) (EditorState, error) {
	d := s.draft(sessionID)
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.editor.Apply(cmd); err != nil {
		return d.editorState(), err
	}
	return d.editorState(), nil
}

func (s *draftService) Preview(sessionID uuid.UUID) (string, error) {
	d := s.draft(sessionID)
	d.mu.Lock()
	snap := d.snapshot()
	d.mu.Unlock()

	return s.previewer.Render(snap)
}

// Submit validates the form and publishes it. The draft lock is released
// while the publish transaction runs so the form stays editable.
func (s *draftService) Submit(ctx context.Context, sessionID uuid.UUID) (*model.Article, error) {
	d := s.draft(sessionID)

	d.mu.Lock()
	if d.submitting {
		d.mu.Unlock()
		return nil, apperrors.ErrSubmitInFlight
	}
	if err := s.validator.Validate(d.fields); err != nil {
		d.mu.Unlock()
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			for _, v := range ve.Violations {
				metrics.RecordViolation(v.Field, v.Rule)
			}
		}
		metrics.PublishTotal.WithLabelValues(metrics.StatusRejected).Inc()
		return nil, err
	}
	snap := d.snapshot()
	d.submitting = true
	d.mu.Unlock()

	published := false
	defer func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.submitting = false
		if published {
			d.fields = model.DraftFields{}
			d.image.Clear()
			d.resetEditor()
		}
	}()

	article, err := s.publisher.Publish(ctx, snap)
	if err != nil {
		slog.Warn("submit failed, draft kept", "session_id", sessionID, "error", err)
		return nil, err
	}
	published = true
	return article, nil
}

// Discard drops the session's draft, staged image included.
func (s *draftService) Discard(sessionID uuid.UUID) {
	s.mu.Lock()
	d, ok := s.drafts[sessionID]
	delete(s.drafts, sessionID)
	s.mu.Unlock()

	if ok {
		d.mu.Lock()
		d.image.Clear()
		d.mu.Unlock()
	}
}
