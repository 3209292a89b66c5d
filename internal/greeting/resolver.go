// Package greeting decides how a greeting message and image are produced.
package greeting

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sebasr/greeting-service/internal/assets"
	"github.com/sebasr/greeting-service/internal/generator"
	"github.com/sebasr/greeting-service/internal/metrics"
	"github.com/sebasr/greeting-service/internal/models"
	"github.com/sebasr/greeting-service/internal/templates"
	"github.com/sebasr/greeting-service/internal/watermark"
)

// WatermarkedDir holds stamped copies of template images.
const WatermarkedDir = "watermarked"

// InvalidModeMessage is returned in the error field for unknown modes.
const InvalidModeMessage = "Invalid mode. Please select 'rule' or 'llm'."

// ErrInvalidMode is returned when the request mode is neither rule nor llm.
var ErrInvalidMode = errors.New("invalid mode")

// errNotConfigured stands in for the text generator when none is set up.
var errNotConfigured = errors.New("no text generation service configured")

// WatermarkConfig holds the overlay text and renderer options.
type WatermarkConfig struct {
	Text    string
	Options watermark.Options
}

// Dependencies holds everything a Resolver needs.
type Dependencies struct {
	Templates *templates.Store
	Text      generator.TextGenerator  // optional
	Images    generator.ImageGenerator // optional
	Assets    assets.Store
	Watermark WatermarkConfig
	Logger    *zap.Logger // optional
	BaseURL   string      // prefix for image URLs, may be empty
}

// Resolver turns a GenerationRequest into a GenerationResult.
type Resolver struct {
	templates *templates.Store
	text      generator.TextGenerator
	images    generator.ImageGenerator
	assets    assets.Store
	mark      WatermarkConfig
	logger    *zap.Logger
	baseURL   string
	newName   func() string
}

// NewResolver creates a resolver from deps.
func NewResolver(deps Dependencies) *Resolver {
	tmpl := deps.Templates
	if tmpl == nil {
		tmpl = templates.Default()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		templates: tmpl,
		text:      deps.Text,
		images:    deps.Images,
		assets:    deps.Assets,
		mark:      deps.Watermark,
		logger:    log,
		baseURL:   deps.BaseURL,
		newName: func() string {
			return assets.GeneratedPrefix + uuid.New().String() + ".jpg"
		},
	}
}

// AssetOutcome reports what happened while preparing an image.
type AssetOutcome struct {
	Name        string // asset actually served
	URL         string
	Watermarked bool
	Err         error // set when the preferred asset could not be produced
}

// Resolve produces a greeting for req. For an unknown mode it returns
// ErrInvalidMode together with a result that still carries a message.
func (r *Resolver) Resolve(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, error) {
	req = req.WithDefaults()
	label := modeLabel(req.Mode)
	start := time.Now()
	defer func() {
		metrics.ResolveDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	switch req.Mode {
	case models.ModeRule:
		res, outcome := r.resolveRule(ctx, req)
		metrics.GreetingsResolved.WithLabelValues(label, outcome).Inc()
		return res, nil
	case models.ModeLLM:
		res, outcome := r.resolveLLM(ctx, req)
		metrics.GreetingsResolved.WithLabelValues(label, outcome).Inc()
		return res, nil
	default:
		metrics.GreetingsResolved.WithLabelValues(label, metrics.OutcomeInvalid).Inc()
		return models.GenerationResult{
			Message:  templates.Fallback(req.Name, req.Prompt),
			ImageURL: r.url(templates.DefaultImage),
			Error:    InvalidModeMessage,
		}, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
}

// modeLabel keeps client-supplied modes out of metric labels.
func modeLabel(mode models.Mode) string {
	if mode.Valid() {
		return string(mode)
	}
	return metrics.ModeOther
}

func (r *Resolver) resolveRule(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, string) {
	tmpl, ok := r.templates.Lookup(req.Prompt)
	if !ok {
		return models.GenerationResult{
			Message:  templates.Fallback(req.Name, req.Prompt),
			ImageURL: r.url(templates.DefaultImage),
		}, metrics.OutcomeGeneric
	}

	res := models.GenerationResult{Message: tmpl.Format(req.Name)}
	if tmpl.ImageFile != "" {
		out := r.StampAsset(ctx, tmpl.ImageFile)
		if out.Err != nil {
			r.logger.Warn("serving template image without watermark",
				zap.String("image", tmpl.ImageFile), zap.Error(out.Err))
		}
		res.ImageURL = out.URL
	}
	return res, metrics.OutcomeTemplate
}

func (r *Resolver) resolveLLM(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, string) {
	text, err := r.generateText(ctx, req)
	if err != nil {
		metrics.AIFailures.WithLabelValues("text").Inc()
		r.logger.Warn("text generation failed, using rule-based fallback", zap.Error(err))
		res, _ := r.resolveRule(ctx, req)
		res.Error = fmt.Sprintf("AI service unavailable. Using rule-based fallback. (%v)", err)
		return res, metrics.OutcomeFallback
	}

	res := models.GenerationResult{Message: text}
	out, err := r.generatedImage(ctx, req.Prompt)
	if err != nil {
		metrics.AIFailures.WithLabelValues("image").Inc()
		r.logger.Warn("image generation failed, using stock image", zap.Error(err))
		out = r.fallbackImage(ctx, req.Prompt)
	}
	res.ImageURL = out.URL
	return res, metrics.OutcomeAI
}

func (r *Resolver) generateText(ctx context.Context, req models.GenerationRequest) (string, error) {
	if r.text == nil {
		return "", errNotConfigured
	}
	return r.text.GenerateText(ctx, generator.TextRequest{
		Prompt: req.Prompt,
		Name:   req.Name,
		Style:  req.Style,
	})
}

// generatedImage asks the image service for a picture, stamps it and stores
// it under a fresh unique name.
func (r *Resolver) generatedImage(ctx context.Context, prompt string) (AssetOutcome, error) {
	if r.images == nil {
		return AssetOutcome{}, errors.New("no image generation service configured")
	}
	img, err := r.images.GenerateImage(ctx, generator.ImagePrompt(prompt))
	if err != nil {
		return AssetOutcome{}, err
	}
	if img == nil {
		return AssetOutcome{}, errors.New("image service returned no image")
	}
	name := r.newName()
	if err := r.saveStamped(ctx, name, img); err != nil {
		return AssetOutcome{}, err
	}
	return AssetOutcome{Name: name, URL: r.url(name), Watermarked: true}, nil
}

// fallbackImage picks the prompt's template image, or the default image, and
// stamps it.
func (r *Resolver) fallbackImage(ctx context.Context, prompt string) AssetOutcome {
	name := templates.DefaultImage
	if tmpl, ok := r.templates.Lookup(prompt); ok && tmpl.ImageFile != "" {
		name = tmpl.ImageFile
	}
	out := r.StampAsset(ctx, name)
	if out.Err != nil {
		r.logger.Warn("serving stock image without watermark",
			zap.String("image", name), zap.Error(out.Err))
	}
	return out
}

// StampAsset watermarks the stored image name into WatermarkedDir. On failure
// the outcome points at the unstamped original and carries the error.
func (r *Resolver) StampAsset(ctx context.Context, name string) AssetOutcome {
	if r.assets == nil {
		return AssetOutcome{Name: name, URL: r.url(name), Err: errors.New("no asset store configured")}
	}
	img, err := assets.LoadImage(ctx, r.assets, name)
	if err != nil {
		metrics.AssetFailures.WithLabelValues("load").Inc()
		return AssetOutcome{Name: name, URL: r.url(name), Err: fmt.Errorf("failed to load %s: %w", name, err)}
	}
	target := path.Join(WatermarkedDir, name)
	if err := r.saveStamped(ctx, target, img); err != nil {
		return AssetOutcome{Name: name, URL: r.url(name), Err: err}
	}
	return AssetOutcome{Name: target, URL: r.url(target), Watermarked: true}
}

func (r *Resolver) saveStamped(ctx context.Context, name string, img image.Image) error {
	if r.assets == nil {
		return errors.New("no asset store configured")
	}
	stamped, err := watermark.Apply(img, r.mark.Text, r.mark.Options)
	if err != nil {
		metrics.AssetFailures.WithLabelValues("watermark").Inc()
		return fmt.Errorf("failed to watermark %s: %w", name, err)
	}
	if err := assets.SaveJPEG(ctx, r.assets, name, stamped); err != nil {
		metrics.AssetFailures.WithLabelValues("save").Inc()
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

func (r *Resolver) url(name string) string {
	return assets.URL(r.baseURL, name)
}
