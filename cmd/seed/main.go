// seed crea una jerarquía de categorías a partir de un XML anidado:
//
//	<categories>
//	  <category name="Electronics">
//	    <category name="Phones"/>
//	  </category>
//	</categories>
//
// Es el mismo formato que devuelve GET /api/categories/tree?format=xml (el atributo id se ignora).
// Acepta archivos ISO-8859-1 además de UTF-8.
//
// Uso: go run ./cmd/seed [ruta/categories.xml]
// Por defecto busca categories.xml en el directorio actual. Usa el store de la configuración (STORE_DRIVER, DB_*).
package main

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/category-api/internal/application/dto"
	"github.com/jhoicas/category-api/internal/application/usecase"
	"github.com/jhoicas/category-api/internal/store"
	"github.com/jhoicas/category-api/pkg/config"
	"github.com/jhoicas/category-api/pkg/logger"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type seedFile struct {
	Categories []seedNode `xml:"category"`
}

type seedNode struct {
	Name     string     `xml:"name,attr"`
	Children []seedNode `xml:"category"`
}

func main() {
	xmlPath := "categories.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(xmlPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", xmlPath).Msg("abrir XML")
	}
	defer f.Close()

	nodes, err := parseSeed(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", xmlPath).Msg("decodificar XML")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar store")
	}
	defer st.Close()

	uc := usecase.NewCategoryUseCase(st.Categories, st.Tx, nil)
	created, err := seed(ctx, uc, nodes, nil)
	if err != nil {
		log.Fatal().Err(err).Int("created", created).Msg("crear categorías")
	}
	log.Info().Str("file", xmlPath).Int("created", created).Msg("seed completado")
}

// parseSeed decodifica el XML de categorías, convirtiendo ISO-8859-1 a UTF-8 si el documento lo declara.
func parseSeed(r io.Reader) ([]seedNode, error) {
	var p seedFile
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return p.Categories, nil
}

// seed crea los nodos en preorden (padre antes que hijos) y devuelve cuántos creó.
func seed(ctx context.Context, uc *usecase.CategoryUseCase, nodes []seedNode, parent *string) (int, error) {
	created := 0
	for _, n := range nodes {
		out, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: n.Name, Parent: parent})
		if err != nil {
			return created, fmt.Errorf("crear %q: %w", n.Name, err)
		}
		created++
		id := out.ID
		sub, err := seed(ctx, uc, n.Children, &id)
		created += sub
		if err != nil {
			return created, err
		}
	}
	return created, nil
}
