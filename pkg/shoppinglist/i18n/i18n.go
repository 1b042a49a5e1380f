// Package i18n localizes the text shown for screen state.
//
// Catalogs are TOML files embedded from locales/. English is the fallback
// for languages without a catalog and for missing messages.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/state"
)

// Message IDs.
const (
	TitleCurrentLists     = "title_current_lists"
	TitleArchivedLists    = "title_archived_lists"
	TitleCurrentProducts  = "title_current_products"
	TitleArchivedProducts = "title_archived_products"
	ListCount             = "list_count"
	ProductCount          = "product_count"
	ResultLoading         = "result_loading"
	ResultError           = "result_error"
	ResultEmpty           = "result_empty"
	MutationFailed        = "mutation_failed"
	ShellHelp             = "shell_help"
	ShellUnknownCommand   = "shell_unknown_command"
	ShellNoItem           = "shell_no_item"
	ShellNoList           = "shell_no_list"
)

//go:embed locales/*.toml
var catalogs embed.FS

// Localizer renders messages in one language.
type Localizer struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	tag       language.Tag
}

// New loads the embedded catalogs and picks the best match for lang.
// An empty lang selects English.
func New(lang string) (*Localizer, error) {
	bundle, err := loadBundle(catalogs)
	if err != nil {
		return nil, err
	}

	requested := language.English
	if lang != "" {
		requested, err = language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", lang, err)
		}
	}

	matcher := language.NewMatcher(bundle.LanguageTags())
	_, index, _ := matcher.Match(requested)
	tag := bundle.LanguageTags()[index]

	return &Localizer{
		bundle:    bundle,
		localizer: goi18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		tag:       tag,
	}, nil
}

func loadBundle(fsys fs.FS) (*goi18n.Bundle, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no catalogs found")
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, file); err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path.Base(file), err)
		}
	}
	return bundle, nil
}

// Language returns the language messages are rendered in.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Languages lists every language with a catalog.
func (l *Localizer) Languages() []language.Tag {
	return l.bundle.LanguageTags()
}

// Text renders message id. Unknown ids render as the id itself.
func (l *Localizer) Text(id string, data map[string]any) string {
	return l.localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Count renders a plural message with {{.Count}} set to n.
func (l *Localizer) Count(id string, n int) string {
	return l.localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
}

func (l *Localizer) localize(cfg *goi18n.LocalizeConfig) string {
	msg, err := l.localizer.Localize(cfg)
	if err != nil {
		// go-i18n returns the fallback text along with a not-found error
		if msg != "" {
			return msg
		}
		return cfg.MessageID
	}
	return msg
}

// Title returns the heading for a screen.
func (l *Localizer) Title(status state.ScreenStatus) string {
	list, _ := status.SelectedShoppingList()
	data := map[string]any{"List": list.Name}

	switch status.Kind {
	case state.StatusCurrentShoppingList:
		return l.Text(TitleCurrentLists, nil)
	case state.StatusArchivedShoppingList:
		return l.Text(TitleArchivedLists, nil)
	case state.StatusCurrentProductList:
		return l.Text(TitleCurrentProducts, data)
	case state.StatusArchivedProductList:
		return l.Text(TitleArchivedProducts, data)
	default:
		return ""
	}
}

// ResultLabel describes a query result that has no rows to show.
// It returns "" for a successful result with data.
func ResultLabel[T any](l *Localizer, r result.Result[[]T]) string {
	switch r.Status() {
	case result.StatusLoading:
		return l.Text(ResultLoading, nil)
	case result.StatusError:
		return l.Text(ResultError, map[string]any{"Error": r.Err().Error()})
	case result.StatusSuccess:
		if data, _ := r.Data(); len(data) == 0 {
			return l.Text(ResultEmpty, nil)
		}
	}
	return ""
}

// Mutation describes a running mutation.
func (l *Localizer) Mutation(m constants.Mutation) string {
	return l.Text("mutation_"+m.GetName(), nil)
}

// Failure describes a failed mutation.
func (l *Localizer) Failure(err *state.MutationError) string {
	return l.Text(MutationFailed, map[string]any{
		"Mutation": l.Mutation(err.Mutation),
		"Error":    err.Err.Error(),
	})
}
