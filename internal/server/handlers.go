package server

import (
	"net/http"
	"strings"

	kerrors "github.com/keggrest/kegg/pkg/errors"
	"github.com/keggrest/kegg/pkg/integrations/kegg"
	"github.com/keggrest/kegg/pkg/render/nodelink"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	db, err := param(r, "db")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.client.Info(r.Context(), db)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	db, err := param(r, "db")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	org, err := param(r, "org")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var orgs []string
	if org != "" {
		orgs = append(orgs, org)
	}
	m, err := s.client.List(r.Context(), db, orgs...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, m)
}

func (s *Server) organisms(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.client.Organisms(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, orgs)
}

func (s *Server) find(w http.ResponseWriter, r *http.Request) {
	p, err := params(r, "db", "query")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	m, err := s.client.Find(r.Context(), p[0], p[1], r.URL.Query().Get("option"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, m)
}

// splitIDs splits a "+"-joined identifier list.
func splitIDs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '+' })
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	raw, err := param(r, "ids")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ids := splitIDs(raw)

	if option := r.URL.Query().Get("option"); option != "" {
		text, err := s.client.GetRaw(r.Context(), option, ids...)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.writeText(w, "text/plain; charset=utf-8", []byte(text))
		return
	}

	entries, err := s.client.Get(r.Context(), ids...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, entries)
}

func (s *Server) seq(w http.ResponseWriter, r *http.Request) {
	raw, err := param(r, "ids")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	seqType := r.URL.Query().Get("type")
	if seqType == "" {
		seqType = kegg.AASeq
	}
	seqs, err := s.client.GetSequences(r.Context(), seqType, splitIDs(raw)...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, seqs)
}

func (s *Server) conv(w http.ResponseWriter, r *http.Request) {
	p, err := params(r, "target", "source")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	links, err := s.client.Conv(r.Context(), p[0], p[1])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, links)
}

func (s *Server) link(w http.ResponseWriter, r *http.Request) {
	p, err := params(r, "target", "source")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "dot" && format != "svg" {
		s.fail(w, r, kerrors.New(kerrors.ErrCodeInvalidOption, "unsupported format %q (want json, dot or svg)", format))
		return
	}

	links, err := s.client.Link(r.Context(), p[0], p[1])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := nodelink.Options{
		Title:   p[1] + " → " + p[0],
		Cluster: r.URL.Query().Has("cluster"),
	}
	switch format {
	case "dot":
		s.writeText(w, "text/vnd.graphviz; charset=utf-8", []byte(nodelink.ToDOT(links, opts)))
	case "svg":
		svg, err := nodelink.RenderSVG(r.Context(), nodelink.ToDOT(links, opts))
		if err != nil {
			s.fail(w, r, kerrors.Wrap(kerrors.ErrCodeInternal, err, "render graph"))
			return
		}
		s.writeText(w, "image/svg+xml", svg)
	default:
		s.writeJSON(w, r, http.StatusOK, links)
	}
}

func (s *Server) compounds(w http.ResponseWriter, r *http.Request) {
	pathway, err := param(r, "pathway")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ids, err := s.client.Compounds(r.Context(), pathway)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, ids)
}
