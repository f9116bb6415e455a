package kegg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/keggrest/kegg/pkg/cache"
	kerrors "github.com/keggrest/kegg/pkg/errors"
	"github.com/keggrest/kegg/pkg/integrations"
	"github.com/keggrest/kegg/pkg/parse"
)

const glucoseEntry = `ENTRY       C00031                      Compound
NAME        D-Glucose;
            Grape sugar;
            Dextrose
FORMULA     C6H12O6
REFERENCE   1  [PMID:12345]
  AUTHORS   Smith J, Doe A.
  TITLE     A study of
            glucose.
  JOURNAL   J Test 1:1 (2000)
REFERENCE   2
  AUTHORS   Roe R.
///
ENTRY       C00022                      Compound
NAME        Pyruvate
///
`

// newTestClient starts a server answering path -> body and returns a client
// pointed at it.
func newTestClient(t *testing.T, routes map[string]string) (*Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(nil, 0, integrations.WithHTTPClient(srv.Client()))
	if err := c.SetBaseURL(srv.URL); err != nil {
		t.Fatalf("SetBaseURL() error: %v", err)
	}
	return c, &hits
}

func TestNewClient(t *testing.T) {
	c := NewClient(cache.NewNullCache(), time.Hour)
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	if err := c.SetBaseURL(GenomeBaseURL + "/"); err != nil {
		t.Fatalf("SetBaseURL() error: %v", err)
	}
	if c.BaseURL() != GenomeBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), GenomeBaseURL)
	}
	if err := c.SetBaseURL("ftp://example.org"); err == nil {
		t.Error("SetBaseURL(ftp) should fail")
	}
}

func TestURL(t *testing.T) {
	c := NewClient(nil, 0)
	tests := []struct {
		op   string
		args []string
		want string
	}{
		{"info", []string{"kegg"}, "https://rest.kegg.jp/info/kegg"},
		{"list", []string{"pathway", "hsa"}, "https://rest.kegg.jp/list/pathway/hsa"},
		{"find", []string{"compound", "C7H10O5", "formula"}, "https://rest.kegg.jp/find/compound/C7H10O5/formula"},
		{"find", []string{"genes", "shiga toxin", ""}, "https://rest.kegg.jp/find/genes/shiga toxin"},
	}
	for _, tt := range tests {
		if got := c.URL(tt.op, tt.args...); got != tt.want {
			t.Errorf("URL(%q, %q) = %q, want %q", tt.op, tt.args, got, tt.want)
		}
	}
}

func TestInfo(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/info/kegg": "kegg             Kyoto Encyclopedia of Genes and Genomes\nkegg             Release 110.0+/04-12, Apr 24\n                 Kanehisa Laboratories\npathway          557 entries\n",
		"/info/note": "single-line",
	})

	res, err := c.Info(context.Background(), "kegg")
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	if res.Kind != parse.KindKeyValue {
		t.Fatalf("Info() kind = %v, want key_value", res.Kind)
	}
	if v, _ := res.KeyValue.Get("pathway"); v != "557 entries" {
		t.Errorf("pathway = %q, want %q", v, "557 entries")
	}
	if v, _ := res.KeyValue.Get("kegg"); v != "Release 110.0+/04-12, Apr 24" {
		t.Errorf("kegg = %q (repeated key should keep the last value)", v)
	}

	res, err = c.Info(context.Background(), "note")
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	if res.Kind != parse.KindList || !reflect.DeepEqual(res.List, []string{"single-line"}) {
		t.Errorf("Info(note) = %+v, want list [single-line]", res)
	}
}

func TestList(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/list/pathway/hsa":         "path:hsa00010\tGlycolysis / Gluconeogenesis - Homo sapiens (human)\npath:hsa00020\tCitrate cycle (TCA cycle) - Homo sapiens (human)\n",
		"/list/empty":               "",
		"/list/hsa:10458+ece:Z5100": "hsa:10458\tBAIAP2; BAR/IMD domain containing adaptor protein 2\nece:Z5100\tespF; secreted proline-rich protein\n",
	})

	m, err := c.List(context.Background(), "pathway", "hsa")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if want := []string{"path:hsa00010", "path:hsa00020"}; !reflect.DeepEqual(m.Keys(), want) {
		t.Errorf("List() keys = %v, want %v", m.Keys(), want)
	}

	m, err = c.List(context.Background(), "empty")
	if err != nil {
		t.Fatalf("List(empty) error: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("List(empty) len = %d, want 0", m.Len())
	}

	m, err = c.List(context.Background(), "hsa:10458+ece:Z5100")
	if err != nil {
		t.Fatalf("List(entries) error: %v", err)
	}
	if want := []string{"hsa:10458", "ece:Z5100"}; !reflect.DeepEqual(m.Keys(), want) {
		t.Errorf("List(entries) keys = %v, want %v", m.Keys(), want)
	}
}

func TestListValidation(t *testing.T) {
	c, hits := newTestClient(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		code kerrors.Code
	}{
		{"empty db", func() error { _, err := c.List(ctx, ""); return err }, kerrors.ErrCodeInvalidDatabase},
		{"slash db", func() error { _, err := c.List(ctx, "a/b"); return err }, kerrors.ErrCodeInvalidDatabase},
		{"two orgs", func() error { _, err := c.List(ctx, "pathway", "hsa", "eco"); return err }, kerrors.ErrCodeInvalidInput},
		{"bad find option", func() error { _, err := c.Find(ctx, "compound", "x", "mass"); return err }, kerrors.ErrCodeInvalidOption},
		{"empty query", func() error { _, err := c.Find(ctx, "compound", " ", ""); return err }, kerrors.ErrCodeInvalidInput},
		{"no ids", func() error { _, err := c.Get(ctx); return err }, kerrors.ErrCodeInvalidEntry},
		{"too many ids", func() error {
			_, err := c.Get(ctx, "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k")
			return err
		}, kerrors.ErrCodeInvalidEntry},
		{"image", func() error { _, err := c.GetRaw(ctx, "image", "map00010"); return err }, kerrors.ErrCodeUnsupported},
		{"bad seq type", func() error { _, err := c.GetSequences(ctx, "mol", "hsa:1"); return err }, kerrors.ErrCodeInvalidOption},
		{"no seq type", func() error { _, err := c.GetSequences(ctx, "", "hsa:1"); return err }, kerrors.ErrCodeInvalidOption},
		{"empty source", func() error { _, err := c.Link(ctx, "pathway", ""); return err }, kerrors.ErrCodeInvalidInput},
		{"bad target", func() error { _, err := c.Conv(ctx, "", "hsa"); return err }, kerrors.ErrCodeInvalidDatabase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !kerrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("invalid input reached the server %d times", n)
	}
}

func TestOrganisms(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/list/organism": "T01001\thsa\tHomo sapiens (human)\tEukaryotes;Animals;Vertebrates;Mammals\nT00007\teco\tEscherichia coli K-12 MG1655\tProkaryotes;Bacteria;Gammaproteobacteria\n",
	})
	orgs, err := c.Organisms(context.Background())
	if err != nil {
		t.Fatalf("Organisms() error: %v", err)
	}
	if len(orgs) != 2 {
		t.Fatalf("Organisms() returned %d, want 2", len(orgs))
	}
	want := parse.Organism{TNumber: "T01001", Code: "hsa", Species: "Homo sapiens (human)", Phylogeny: "Eukaryotes;Animals;Vertebrates;Mammals"}
	if orgs[0] != want {
		t.Errorf("Organisms()[0] = %+v, want %+v", orgs[0], want)
	}
}

func TestFind(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/find/compound/C7H10O5/formula": "cpd:C00493\tC7H10O5\ncpd:C04236\tC7H10O5\n",
		"/find/genes/shiga toxin":        "ece:Z1464\tstx2A; shiga toxin 2 subunit A\n",
	})

	m, err := c.Find(context.Background(), "compound", "C7H10O5", FindFormula)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("Find() len = %d, want 2", m.Len())
	}

	m, err = c.Find(context.Background(), "genes", "shiga toxin", "")
	if err != nil {
		t.Fatalf("Find(spaces) error: %v", err)
	}
	if v, _ := m.Get("ece:Z1464"); v != "stx2A; shiga toxin 2 subunit A" {
		t.Errorf("Find(spaces) value = %q", v)
	}
}

func TestGet(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/get/cpd:C00031+cpd:C00022": glucoseEntry,
	})

	entries, err := c.Get(context.Background(), "cpd:C00031", "cpd:C00022")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Get() returned %d entries, want 2", len(entries))
	}

	e := entries[0]
	if e.ID != "C00031" || e.Kind != "Compound" {
		t.Errorf("entry = (%q, %q), want (C00031, Compound)", e.ID, e.Kind)
	}
	if want := []string{"D-Glucose", "Grape sugar", "Dextrose"}; !reflect.DeepEqual(e.Names, want) {
		t.Errorf("Names = %v, want %v", e.Names, want)
	}
	if !e.Record.Terminated() {
		t.Error("entry should be terminated")
	}
	if len(e.References) != 2 {
		t.Fatalf("References = %d, want 2", len(e.References))
	}
	if got := e.References[0].Fields["TITLE"]; !reflect.DeepEqual(got, []string{"A study of glucose."}) {
		t.Errorf("TITLE = %q", got)
	}
	if entries[1].ID != "C00022" || len(entries[1].References) != 0 {
		t.Errorf("second entry = %+v", entries[1])
	}
}

const glycolysisEntry = `ENTRY       map00010                    Pathway
NAME        Glycolysis / Gluconeogenesis
CLASS       Metabolism; Carbohydrate metabolism
REFERENCE   PMID:12345
  AUTHORS   Smith J
  TITLE     A paper
REL_PATHWAY map00020  Citrate cycle (TCA cycle)
            map00030  Pentose phosphate pathway
KO_PATHWAY  ko00010
///
`

func TestGetFieldsAfterReferences(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{"/get/map00010": glycolysisEntry})

	entries, err := c.Get(context.Background(), "map00010")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(entries) != 1 || len(entries[0].References) != 1 {
		t.Fatalf("Get() = %+v, want one entry with one reference", entries)
	}

	ref := entries[0].References[0]
	for _, tag := range []string{"REL_PATHWAY", "KO_PATHWAY"} {
		if _, ok := ref.Fields[tag]; ok {
			t.Errorf("reference holds top-level field %s: %v", tag, ref.Fields[tag])
		}
	}
	if !reflect.DeepEqual(ref.Order, []string{"AUTHORS", "TITLE"}) {
		t.Errorf("reference fields = %v, want [AUTHORS TITLE]", ref.Order)
	}
	if got := entries[0].Record.Get("REL_PATHWAY"); len(got) != 2 {
		t.Errorf("REL_PATHWAY = %q, want 2 lines", got)
	}
}

func TestGetEmpty(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{"/get/cpd:C99999": "\n"})
	entries, err := c.Get(context.Background(), "cpd:C99999")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Get() = %d entries, want 0", len(entries))
	}
}

func TestGetRawAndSequences(t *testing.T) {
	fasta := ">hsa:10458 BAIAP2; BAR/IMD domain containing adaptor protein 2\nMSLSRSEEMHRLTENVYKTIM\nEQFNPSLRNFIAMGKNYEK\n"
	c, _ := newTestClient(t, map[string]string{
		"/get/hsa:10458/aaseq": fasta,
		"/get/C00031/mol":      "\n  Mrv1818\n\n 12 12  0  0\nM  END\n",
	})

	seqs, err := c.GetSequences(context.Background(), AASeq, "hsa:10458")
	if err != nil {
		t.Fatalf("GetSequences() error: %v", err)
	}
	if len(seqs) != 1 || seqs[0].ID() != "hsa:10458" {
		t.Fatalf("GetSequences() = %+v", seqs)
	}
	if seqs[0].Residues != "MSLSRSEEMHRLTENVYKTIMEQFNPSLRNFIAMGKNYEK" {
		t.Errorf("Residues = %q", seqs[0].Residues)
	}

	raw, err := c.GetRaw(context.Background(), "mol", "C00031")
	if err != nil {
		t.Fatalf("GetRaw() error: %v", err)
	}
	if raw != "Mrv1818\n\n 12 12  0  0\nM  END" {
		t.Errorf("GetRaw() = %q", raw)
	}
}

func TestLinkAndConv(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/link/pathway/hsa:10458+ece:Z5100": "hsa:10458\tpath:hsa04520\nhsa:10458\tpath:hsa04810\nece:Z5100\tpath:ece05130\n",
		"/conv/ncbi-geneid/eco":             "eco:b0001\tncbi-geneid:944742\n",
		"/link/pathway/ragged":              "hsa:10458\tpath:hsa04520\nhsa:10459\n",
	})

	links, err := c.Link(context.Background(), "pathway", "hsa:10458+ece:Z5100")
	if err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	if len(links) != 3 || links[2] != (Link{From: "ece:Z5100", To: "path:ece05130"}) {
		t.Errorf("Link() = %+v", links)
	}

	conv, err := c.Conv(context.Background(), "ncbi-geneid", "eco")
	if err != nil {
		t.Fatalf("Conv() error: %v", err)
	}
	if want := []Link{{From: "eco:b0001", To: "ncbi-geneid:944742"}}; !reflect.DeepEqual(conv, want) {
		t.Errorf("Conv() = %+v, want %+v", conv, want)
	}

	_, err = c.Link(context.Background(), "pathway", "ragged")
	if !kerrors.Is(err, kerrors.ErrCodeShape) {
		t.Errorf("Link(ragged) error = %v, want SHAPE", err)
	}
}

func TestCompounds(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/link/compound/path:map00010": "path:map00010\tcpd:C00022\npath:map00010\tcpd:C00024\npath:map00010\tcpd:C00022\n",
	})
	ids, err := c.Compounds(context.Background(), "path:map00010")
	if err != nil {
		t.Fatalf("Compounds() error: %v", err)
	}
	if want := []string{"cpd:C00022", "cpd:C00024"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Compounds() = %v, want %v", ids, want)
	}
}

func TestNotFound(t *testing.T) {
	c, _ := newTestClient(t, nil)
	_, err := c.Get(context.Background(), "cpd:C00001")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	var te *kerrors.TransportError
	if !errors.As(err, &te) || te.Status != http.StatusNotFound {
		t.Errorf("Get() error should be a 404 TransportError, got %v", err)
	}
}

func TestCachedResponses(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("path:map00010\tGlycolysis\n"))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(fc, time.Hour, integrations.WithHTTPClient(srv.Client()))
	if err := c.SetBaseURL(srv.URL); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		m, err := c.List(context.Background(), "pathway")
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if m.Len() != 1 {
			t.Errorf("List() len = %d, want 1", m.Len())
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}
}
