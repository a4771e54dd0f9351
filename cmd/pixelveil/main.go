// Command pixelveil is a batch face anonymizer: it detects faces in the
// given photos, applies the chosen blocking effect and writes the results
// to a directory or a single ZIP archive.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/app"
	"github.com/pixelveil/pixelveil/pkg/detect"
	"github.com/pixelveil/pixelveil/pkg/effect"
	"github.com/pixelveil/pixelveil/pkg/export"
	"github.com/pixelveil/pixelveil/pkg/photo"
	"github.com/pixelveil/pixelveil/util/log"
)

func main() {
	var (
		cascade     = flag.String("cascade", "facefinder", "path to the pigo facefinder cascade")
		effectID    = flag.String("effect", "blur", "blocking effect: "+fmt.Sprint(effect.IDs()))
		intensity   = flag.Int("intensity", 60, "effect intensity 0-100")
		sensitivity = flag.String("sensitivity", "medium", "detector sensitivity: low, medium, high")
		format      = flag.String("format", "png", "export format: png or jpeg")
		quality     = flag.Float64("quality", 0.92, "jpeg quality 0-1")
		sticker     = flag.String("sticker", "", "emoji effect glyph: "+fmt.Sprint(effect.Glyphs()))
		colorName   = flag.String("color", "", "solid effect color (name or #rrggbb)")
		outDir      = flag.String("out", ".", "output directory")
		zipPath     = flag.String("zip", "", "write all outputs into this ZIP instead of -out")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: pixelveil [flags] photo.jpg [photo2.png ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	detector, err := detect.NewPigo(*cascade)
	if err != nil {
		log.Fatalf("Loading detector: %v", err)
	}

	settings := config.Settings{
		EffectID:    *effectID,
		Intensity:   *intensity,
		Sensitivity: config.Sensitivity(*sensitivity),
		Sticker:     *sticker,
		ColorHex:    *colorName,
		Format:      config.ExportFormat(*format),
		Quality:     *quality,
	}

	a := app.New(detector, settings)
	defer a.Close()

	files := make([]photo.File, 0, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		files = append(files, photo.File{Name: filepath.Base(path), Data: data})
	}
	if err := a.Handle(app.AddPhotos{Files: files}); err != nil {
		log.Fatalf("Loading photos: %v", err)
	}

	// Process synchronously in insertion order for a deterministic batch
	// run; the background queue is for interactive use.
	for _, id := range a.Store().IDs() {
		if err := a.Handle(app.ActivatePhoto{ID: id}); err != nil {
			log.Printf("Activating photo: %v", err)
			continue
		}
		if err := a.ProcessActive(); err != nil {
			log.Printf("%v", err)
		}
	}

	entries, err := a.ExportAll()
	if err != nil {
		log.Printf("Export: %v", err)
	}
	if len(entries) == 0 {
		log.Fatal("No photos exported")
	}

	if *zipPath != "" {
		blob, err := export.Archive(entries)
		if err != nil {
			log.Fatalf("Creating archive: %v", err)
		}
		if err := os.WriteFile(*zipPath, blob, 0644); err != nil {
			log.Fatalf("Writing archive: %v", err)
		}
		fmt.Printf("Wrote %d photos to %s\n", len(entries), *zipPath)
		return
	}

	for _, e := range entries {
		target := filepath.Join(*outDir, e.Name)
		if err := os.WriteFile(target, e.Data, 0644); err != nil {
			log.Printf("Writing %s: %v", target, err)
			continue
		}
		fmt.Println(target)
	}
}
