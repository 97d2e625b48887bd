package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/matzehuels/canvasbench/pkg/buildinfo"
	"github.com/matzehuels/canvasbench/pkg/httputil"
	"github.com/matzehuels/canvasbench/pkg/scene"
)

//go:embed static/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Version  string
	Backends []BackendInfo
	Kinds    []scene.Kind
	Kind     scene.Kind
	Count    int
	MaxCount int
	Zoom     float64
	Random   bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	infos, err := s.backendInfos()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	kind := s.Defaults.Kind
	if kind == "" {
		kind = scene.KindRect
	}
	data := indexData{
		Version:  buildinfo.Version,
		Backends: infos,
		Kinds:    scene.Kinds,
		Kind:     kind,
		Count:    min(s.Defaults.Count, s.MaxCount),
		MaxCount: s.MaxCount,
		Zoom:     s.Defaults.Zoom,
		Random:   s.Defaults.Style.RandomColors,
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
