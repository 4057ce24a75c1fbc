package catalogue

import (
	"context"
	"errors"
	"testing"

	"github.com/eraptis/eustat-cli/internal/apperr"
)

func testCatalogue(t *testing.T) (*Catalogue, *int, *int) {
	t.Helper()
	tocCalls := new(int)
	mbCalls := new(int)
	c := New(Sources{
		TOC: func(ctx context.Context) ([]byte, error) {
			*tocCalls++
			return []byte(tocFixture), nil
		},
		Metabase: func(ctx context.Context) ([]byte, error) {
			*mbCalls++
			return []byte(metabaseFixture), nil
		},
	})
	return c, tocCalls, mbCalls
}

func TestCatalogue_TOCMemoized(t *testing.T) {
	c, tocCalls, _ := testCatalogue(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.TableOfContents(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if *tocCalls != 1 {
		t.Fatalf("expected a single source fetch, got %d", *tocCalls)
	}
}

func TestCatalogue_PreloadAndReset(t *testing.T) {
	c, tocCalls, mbCalls := testCatalogue(t)
	ctx := context.Background()

	if c.IsLoaded() {
		t.Fatalf("expected unloaded catalogue")
	}
	if err := c.Preload(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsLoaded() {
		t.Fatalf("expected loaded catalogue after preload")
	}
	if *tocCalls != 1 || *mbCalls != 1 {
		t.Fatalf("expected one fetch each, got toc=%d metabase=%d", *tocCalls, *mbCalls)
	}

	c.Reset()
	if c.IsLoaded() {
		t.Fatalf("expected unloaded catalogue after reset")
	}
	if err := c.Preload(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *tocCalls != 2 || *mbCalls != 2 {
		t.Fatalf("expected refetch after reset, got toc=%d metabase=%d", *tocCalls, *mbCalls)
	}
}

func TestCatalogue_DimensionMetadata_NotFound(t *testing.T) {
	c, _, _ := testCatalogue(t)
	_, err := c.DimensionMetadata(context.Background(), "does_not_exist")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected DatasetNotFoundError, got %v", err)
	}
}

func TestCatalogue_DatasetInfo(t *testing.T) {
	c, _, _ := testCatalogue(t)
	info, err := c.DatasetInfo(context.Background(), "tps00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "Population on 1 January" {
		t.Fatalf("unexpected info: %+v", info)
	}

	_, err = c.DatasetInfo(context.Background(), "nope")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected DatasetNotFoundError, got %v", err)
	}
}

func TestCatalogue_Browse(t *testing.T) {
	c, _, _ := testCatalogue(t)
	ctx := context.Background()

	// Empty folder code starts at the root.
	parent, children, err := c.Browse(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent.Code != RootCode {
		t.Fatalf("expected root folder, got %+v", parent)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if !children[0].HasChildren || children[0].ChildCount != 2 {
		t.Fatalf("expected general folder with 2 entries, got %+v", children[0])
	}

	_, _, err = c.Browse(ctx, "no_such_folder")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected DatasetNotFoundError, got %v", err)
	}
}

func TestCatalogue_Search_RanksCodeMatchesFirst(t *testing.T) {
	c, _, _ := testCatalogue(t)
	results, err := c.Search(context.Background(), "gdp", SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("expected results")
	}
	if results[0].Code != "nama_10_gdp" {
		t.Fatalf("expected nama_10_gdp first, got %+v", results[0])
	}
}

func TestCatalogue_Search_EmptyQueryKeepsCatalogueOrder(t *testing.T) {
	c, _, _ := testCatalogue(t)
	results, err := c.Search(context.Background(), "", SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected every entry, got %d", len(results))
	}
	if results[0].Code != "data" {
		t.Fatalf("expected catalogue order, got %+v", results[0])
	}
}

func TestCatalogue_Search_UpdatedSince(t *testing.T) {
	c, _, _ := testCatalogue(t)

	results, err := c.Search(context.Background(), "", SearchOptions{UpdatedSince: "2024-02-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Folders carry no update date and are excluded when a bound is set.
	if len(results) != 1 || results[0].Code != "nama_10_gdp" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestCatalogue_Search_InvalidSinceDate(t *testing.T) {
	c, _, _ := testCatalogue(t)
	_, err := c.Search(context.Background(), "", SearchOptions{UpdatedSince: "01/02/2024"})
	if !apperr.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestCatalogue_Search_MaxResults(t *testing.T) {
	c, _, _ := testCatalogue(t)
	results, err := c.Search(context.Background(), "", SearchOptions{MaxResults: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestCatalogue_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("network down")
	c := New(Sources{
		TOC: func(ctx context.Context) ([]byte, error) { return nil, boom },
	})
	_, err := c.TableOfContents(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}
