package pages_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/editing"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/registry"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
	"github.com/goliatone/go-pagebuilder/schema"
)

type serviceFixture struct {
	svc    pages.Service
	store  *pages.MemoryStore
	logger *testsupport.RecordingLogger
}

func newServiceFixture(t *testing.T, ids identity.Generator, docs ...*schema.PageDocument) serviceFixture {
	t.Helper()
	opts := []registry.Option{}
	if ids != nil {
		opts = append(opts, registry.WithIDGenerator(ids))
	}
	reg := registry.New(opts...)
	if err := registry.RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins() error = %v", err)
	}
	reg.Freeze()

	store := pages.NewMemoryStore(docs...)
	logger := testsupport.NewRecordingLogger()
	svc := pages.NewService(store,
		pages.WithComponentFactory(reg),
		pages.WithDocumentValidator(validation.NewValidator(reg)),
		pages.WithSanitizer(pages.NewHTMLSanitizer()),
		pages.WithLogger(logger),
	)
	return serviceFixture{svc: svc, store: store, logger: logger}
}

func componentIDs(doc *schema.PageDocument) []string {
	ids := make([]string, len(doc.Components))
	for i, component := range doc.Components {
		ids[i] = component.ID
	}
	return ids
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, nil)

	doc, err := fx.svc.Create(ctx, pages.CreatePageRequest{Slug: "about", Title: "About us", Description: "Who we are"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if doc.ID != identity.PageUUID("about").String() {
		t.Fatalf("expected deterministic id, got %q", doc.ID)
	}
	if doc.Metadata.Title.Resolve("es") != "About us" || doc.Metadata.Description == nil {
		t.Fatalf("unexpected metadata %+v", doc.Metadata)
	}
	if len(doc.Components) != 0 || doc.Components == nil {
		t.Fatalf("expected empty component list, got %#v", doc.Components)
	}
	if !fx.logger.Has("pages.created") {
		t.Fatalf("expected pages.created log entry")
	}

	if _, err := fx.svc.Create(ctx, pages.CreatePageRequest{Slug: "about", Title: "Again"}); !errors.Is(err, pages.ErrPageExists) {
		t.Fatalf("expected ErrPageExists, got %v", err)
	}
	if _, err := fx.svc.Create(ctx, pages.CreatePageRequest{Slug: "contact"}); !errors.Is(err, pages.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := fx.svc.Create(ctx, pages.CreatePageRequest{Title: "No slug"}); !errors.Is(err, pages.ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
}

func TestServiceInsertComponent(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, identity.Sequence("n"), testsupport.Page("home", testsupport.HeroComponent()))

	doc, component, err := fx.svc.InsertComponent(ctx, pages.InsertComponentRequest{Slug: "home", Type: "features", Position: -1})
	if err != nil {
		t.Fatalf("InsertComponent() error = %v", err)
	}
	if component.ID != "features-n1" || component.Type != "features" {
		t.Fatalf("unexpected component %+v", component)
	}
	doc, _, err = fx.svc.InsertComponent(ctx, pages.InsertComponentRequest{Slug: "home", Type: "cta", Position: 0})
	if err != nil {
		t.Fatalf("InsertComponent() at head error = %v", err)
	}
	want := []string{"cta-n2", "hero-1", "features-n1"}
	if got := componentIDs(doc); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}

	stored, _ := fx.store.GetPage(ctx, "home")
	if len(stored.Components) != 3 {
		t.Fatalf("expected insert persisted, got %d components", len(stored.Components))
	}

	if _, _, err := fx.svc.InsertComponent(ctx, pages.InsertComponentRequest{Slug: "home", Type: "hero", Position: 9}); !errors.Is(err, pages.ErrPositionOutOfRange) {
		t.Fatalf("expected ErrPositionOutOfRange, got %v", err)
	}
	if _, _, err := fx.svc.InsertComponent(ctx, pages.InsertComponentRequest{Slug: "home", Type: "carousel"}); !errors.Is(err, pages.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if _, _, err := fx.svc.InsertComponent(ctx, pages.InsertComponentRequest{Slug: "missing", Type: "hero"}); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestServiceMoveAndRemove(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, identity.Sequence("n"), testsupport.Page("home", testsupport.HeroComponent()))
	for _, typ := range []string{"features", "faq"} {
		if _, _, err := fx.svc.InsertComponent(ctx, pages.InsertComponentRequest{Slug: "home", Type: typ, Position: -1}); err != nil {
			t.Fatalf("InsertComponent(%s) error = %v", typ, err)
		}
	}

	doc, err := fx.svc.MoveComponent(ctx, pages.MoveComponentRequest{Slug: "home", ComponentID: "hero-1", Position: 2})
	if err != nil {
		t.Fatalf("MoveComponent() error = %v", err)
	}
	if got := fmt.Sprint(componentIDs(doc)); got != "[features-n1 faq-n2 hero-1]" {
		t.Fatalf("unexpected order after move %s", got)
	}
	if _, err := fx.svc.MoveComponent(ctx, pages.MoveComponentRequest{Slug: "home", ComponentID: "hero-1", Position: 3}); !errors.Is(err, pages.ErrPositionOutOfRange) {
		t.Fatalf("expected ErrPositionOutOfRange, got %v", err)
	}

	doc, err = fx.svc.RemoveComponent(ctx, pages.RemoveComponentRequest{Slug: "home", ComponentID: "faq-n2"})
	if err != nil {
		t.Fatalf("RemoveComponent() error = %v", err)
	}
	if got := fmt.Sprint(componentIDs(doc)); got != "[features-n1 hero-1]" {
		t.Fatalf("unexpected order after remove %s", got)
	}
	if _, err := fx.svc.RemoveComponent(ctx, pages.RemoveComponentRequest{Slug: "home", ComponentID: "faq-n2"}); !errors.Is(err, schema.ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}
}

func TestServiceUpdateFieldRoutesToBaseOrVariant(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, nil, testsupport.Page("home", testsupport.HeroComponent()))

	doc, err := fx.svc.UpdateField(ctx, pages.UpdateFieldRequest{
		Slug:        "home",
		ComponentID: "hero-1",
		Field:       "heading",
		Value:       schema.Localized("New Base"),
	})
	if err != nil {
		t.Fatalf("UpdateField() base error = %v", err)
	}
	hero, _ := doc.Component("hero-1")
	if hero.Fields["heading"].(schema.TextField).Text.Resolve("en") != "New Base" {
		t.Fatalf("base heading not updated")
	}
	if hero.Variants["premium"]["heading"].(schema.TextField).Text.Resolve("en") != "Premium Heading" {
		t.Fatalf("variant override changed by base edit")
	}

	doc, err = fx.svc.UpdateField(ctx, pages.UpdateFieldRequest{
		Slug:        "home",
		ComponentID: "hero-1",
		Variant:     "premium",
		Field:       "description",
		Value:       schema.Localized("<p>Premium copy</p>"),
	})
	if err != nil {
		t.Fatalf("UpdateField() variant error = %v", err)
	}
	hero, _ = doc.Component("hero-1")
	if hero.Fields["description"].(schema.RichTextField).Text.Resolve("en") != "Base Description" {
		t.Fatalf("base description changed by variant edit")
	}
	override, ok := hero.Variants["premium"]["description"].(schema.RichTextField)
	if !ok || override.Text.Resolve("en") != "<p>Premium copy</p>" {
		t.Fatalf("expected new premium override, got %#v", hero.Variants["premium"]["description"])
	}

	stored, _ := fx.store.GetPage(ctx, "home")
	storedHero, _ := stored.Component("hero-1")
	if _, ok := storedHero.Variants["premium"]["description"]; !ok {
		t.Fatalf("variant edit not persisted")
	}
}

func TestServiceUpdateFieldFailureLeavesPageUntouched(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, nil, testsupport.Page("home", testsupport.HeroComponent()))
	before, _ := fx.store.GetPage(ctx, "home")

	_, err := fx.svc.UpdateField(ctx, pages.UpdateFieldRequest{Slug: "home", ComponentID: "hero-1", Field: "subtitle", Value: schema.Localized("x")})
	if !errors.Is(err, editing.ErrInvalidFieldName) {
		t.Fatalf("expected ErrInvalidFieldName, got %v", err)
	}
	_, err = fx.svc.UpdateField(ctx, pages.UpdateFieldRequest{Slug: "home", ComponentID: "hero-1", Field: "heading", Value: schema.Items{"x"}})
	if !errors.Is(err, editing.ErrValueKindMismatch) {
		t.Fatalf("expected ErrValueKindMismatch, got %v", err)
	}
	_, err = fx.svc.UpdateField(ctx, pages.UpdateFieldRequest{Slug: "home", ComponentID: "ghost", Field: "heading", Value: schema.Localized("x")})
	if !errors.Is(err, schema.ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}

	after, _ := fx.store.GetPage(ctx, "home")
	beforeHero, _ := before.Component("hero-1")
	afterHero, _ := after.Component("hero-1")
	if afterHero.Fields["heading"].(schema.TextField).Text.Resolve("en") != beforeHero.Fields["heading"].(schema.TextField).Text.Resolve("en") {
		t.Fatalf("failed edits must not change the stored page")
	}
}

func TestServiceUpdateTextKeepsOtherLocales(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, nil, testsupport.Page("home", testsupport.HeroComponent()))

	doc, err := fx.svc.UpdateText(ctx, pages.UpdateTextRequest{
		Slug:        "home",
		ComponentID: "hero-1",
		Field:       "heading",
		Locale:      "es",
		Text:        "Titular",
	})
	if err != nil {
		t.Fatalf("UpdateText() error = %v", err)
	}
	hero, _ := doc.Component("hero-1")
	heading := hero.Fields["heading"].(schema.TextField).Text
	if heading.Resolve("es") != "Titular" || heading.Resolve("en") != "Base Heading" {
		t.Fatalf("unexpected heading %v", heading)
	}
}

func TestServiceSaveSanitizesAndValidates(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, nil)

	hero := testsupport.HeroComponent()
	hero.Fields["description"] = schema.RichTextField{Text: schema.Localized(`<p onclick="x()">Hi<script>alert(1)</script></p>`)}
	saved, err := fx.svc.Save(ctx, testsupport.Page("home", hero))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, _ := saved.Component("hero-1")
	if text := got.Fields["description"].(schema.RichTextField).Text.Resolve("en"); text != "<p>Hi</p>" {
		t.Fatalf("expected sanitized rich text, got %q", text)
	}

	broken := testsupport.HeroComponent()
	broken.Variants["premium"]["subtitle"] = schema.TextField{Text: schema.Localized("x")}
	if _, err := fx.svc.Save(ctx, testsupport.Page("broken", broken)); !errors.Is(err, validation.ErrUnknownOverrideField) {
		t.Fatalf("expected ErrUnknownOverrideField, got %v", err)
	}
	if _, err := fx.store.GetPage(ctx, "broken"); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("invalid page must not be stored, got %v", err)
	}
	if !fx.logger.Has("pages.validation_failed") {
		t.Fatalf("expected pages.validation_failed log entry")
	}
}

func TestServiceSaveTrimsSlug(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, nil)

	doc := testsupport.Page(" home ", testsupport.HeroComponent())
	saved, err := fx.svc.Save(ctx, doc)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Slug != "home" {
		t.Fatalf("expected trimmed slug, got %q", saved.Slug)
	}
	if doc.Slug != " home " {
		t.Fatalf("caller document must not be modified, got %q", doc.Slug)
	}
	stored, err := fx.store.GetPage(ctx, "home")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if stored.Slug != "home" {
		t.Fatalf("expected stored slug home, got %q", stored.Slug)
	}

	if _, err := fx.svc.UpdateField(ctx, pages.UpdateFieldRequest{Slug: "home", ComponentID: "hero-1", Field: "heading", Value: schema.Localized("Edited")}); err != nil {
		t.Fatalf("UpdateField() error = %v", err)
	}
}

func TestServiceResolvePersonalizesAndLocalizes(t *testing.T) {
	ctx := context.Background()
	hero := testsupport.HeroComponent()
	hero.Fields["heading"] = schema.TextField{Text: schema.NewLocalizedText("Base Heading", map[schema.Locale]string{"es": "Titular"})}
	fx := newServiceFixture(t, nil, testsupport.Page("home", hero))

	view, err := fx.svc.Resolve(ctx, "home", schema.PersonalizationContext{}, "es")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := view.Components[0].Fields["heading"]; got != "Titular" {
		t.Fatalf("expected localized base heading, got %v", got)
	}
	if got := view.Components[0].Fields["description"]; got != "Base Description" {
		t.Fatalf("expected fallback description, got %v", got)
	}

	view, err = fx.svc.Resolve(ctx, "home", schema.ForSegment("premium"), "es")
	if err != nil {
		t.Fatalf("Resolve() premium error = %v", err)
	}
	if got := view.Components[0].Fields["heading"]; got != "Premium Heading" {
		t.Fatalf("expected premium heading with fallback locale, got %v", got)
	}
	image := view.Components[0].Fields["image"].(map[string]any)
	if image["src"] != "/img/hero.png" || image["alt"] != "Hero image" {
		t.Fatalf("unexpected image %v", image)
	}
	if view.Title != "Page home" || view.Locale != "es" {
		t.Fatalf("unexpected view envelope %+v", view)
	}
}

func TestServiceSerializesConcurrentEdits(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t, nil, testsupport.Page("home"))

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := fx.svc.InsertComponent(ctx, pages.InsertComponentRequest{Slug: "home", Type: "stats", Position: -1}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("InsertComponent() error = %v", err)
	}

	doc, _ := fx.store.GetPage(ctx, "home")
	if len(doc.Components) != writers {
		t.Fatalf("expected %d components, got %d (lost update)", writers, len(doc.Components))
	}
}

func TestServiceWatchRequiresWatchableStore(t *testing.T) {
	fx := newServiceFixture(t, nil)
	if _, err := fx.svc.Watch(context.Background()); err == nil {
		t.Fatalf("expected error for memory store")
	}
}
