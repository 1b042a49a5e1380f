package i18n

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/state"
)

func mustNew(t *testing.T, lang string) *Localizer {
	t.Helper()
	l, err := New(lang)
	require.NoError(t, err)
	return l
}

func TestLanguageMatching(t *testing.T) {
	tests := []struct {
		lang string
		want language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"de", language.German},
		{"de-AT", language.German},
		{"fr", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			base, _ := mustNew(t, tt.lang).Language().Base()
			want, _ := tt.want.Base()
			assert.Equal(t, want, base)
		})
	}
}

func TestInvalidLanguage(t *testing.T) {
	_, err := New("not a language!")
	assert.Error(t, err)
}

func TestEveryCatalogHasEveryMessage(t *testing.T) {
	en := mustNew(t, "en")
	de := mustNew(t, "de")
	assert.Len(t, en.Languages(), 2)

	ids := []string{
		TitleCurrentLists, TitleArchivedLists, TitleCurrentProducts, TitleArchivedProducts,
		ResultLoading, ResultError, ResultEmpty, MutationFailed, ShellHelp, ShellUnknownCommand,
		ShellNoItem, ShellNoList,
	}
	for _, m := range constants.Mutations {
		ids = append(ids, "mutation_"+m.GetName())
	}
	for _, id := range ids {
		assert.NotEqual(t, id, en.Text(id, nil), "en is missing %s", id)
		assert.NotEqual(t, id, de.Text(id, nil), "de is missing %s", id)
	}
}

func TestTitles(t *testing.T) {
	list := model.ShoppingList{ID: 1, Name: "Party"}
	en := mustNew(t, "en")
	de := mustNew(t, "de")

	assert.Equal(t, "Shopping lists", en.Title(state.StatusOf(router.ShoppingListCurrent())))
	assert.Equal(t, "Archivierte Listen", de.Title(state.StatusOf(router.ShoppingListArchived())))
	assert.Equal(t, "Party", en.Title(state.StatusOf(router.ProductListCurrent(list))))
	assert.Equal(t, "Party (archiviert)", de.Title(state.StatusOf(router.ProductListArchived(list))))
	assert.Empty(t, en.Title(state.ScreenStatus{}))
}

func TestPluralCounts(t *testing.T) {
	en := mustNew(t, "en")
	de := mustNew(t, "de")

	assert.Equal(t, "1 product", en.Count(ProductCount, 1))
	assert.Equal(t, "3 products", en.Count(ProductCount, 3))
	assert.Equal(t, "0 lists", en.Count(ListCount, 0))
	assert.Equal(t, "1 Produkt", de.Count(ProductCount, 1))
	assert.Equal(t, "2 Produkte", de.Count(ProductCount, 2))
}

func TestResultLabel(t *testing.T) {
	en := mustNew(t, "en")

	assert.Equal(t, "Loading", ResultLabel(en, result.Loading[[]state.ProductUI]()))
	assert.Equal(t, "Nothing here yet", ResultLabel(en, result.Success([]state.ProductUI{})))
	assert.Equal(t, "Could not load: disk gone", ResultLabel(en, result.Failure[[]state.ProductUI](errors.New("disk gone"))))
	assert.Empty(t, ResultLabel(en, result.Success([]state.ProductUI{{ID: 1}})))
	assert.Empty(t, ResultLabel(en, result.None[[]state.ProductUI]()))
}

func TestFailure(t *testing.T) {
	de := mustNew(t, "de")
	err := &state.MutationError{Mutation: constants.MutationCreateProduct, Err: errors.New("voll")}
	assert.Equal(t, "Produkt wird hinzugefügt fehlgeschlagen: voll", de.Failure(err))
}

func TestUnknownMessageFallsBackToID(t *testing.T) {
	assert.Equal(t, "no_such_message", mustNew(t, "en").Text("no_such_message", nil))
}

func TestLoadBundleRequiresCatalogs(t *testing.T) {
	_, err := loadBundle(fstest.MapFS{})
	assert.Error(t, err)
}
