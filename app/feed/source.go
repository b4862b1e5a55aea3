package feed

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultTimeout = 30

func DefaultSource() *Source {
	return &Source{
		Selectors: Selectors{
			Header:    "header h1",
			Image:     "figure img",
			ImageAttr: "src",
			Text:      ".t-redactor__text",
		},
		Fallbacks: Fallbacks{
			Title:   "Нет заголовка",
			Link:    "Нет ссылки",
			Date:    "Нет даты",
			Header:  "Нет заголовка",
			Image:   "Нет изображения",
			Text:    "Нет текста",
			Article: "Нет текста статьи",
		},
		Settings: SourceSettings{
			Timeout: defaultTimeout,
		},
	}
}

// LoadSource reads the YAML source profile at path. A missing file is not an
// error: the built-in profile is returned instead.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Source profile not found, using defaults", "path", path)
		return DefaultSource(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	source, err := parseSource(data)
	if err != nil {
		return nil, fmt.Errorf("invalid source profile %s: %w", path, err)
	}

	slog.Debug("Source profile loaded", "path", path, "timeout", source.Settings.Timeout, "extract_content", source.Settings.ExtractContent)
	return source, nil
}

func parseSource(data []byte) (*Source, error) {
	var raw Source
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if raw.Settings.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be non-negative")
	}

	source := mergeSource(DefaultSource(), &raw)
	if err := validateSource(source); err != nil {
		return nil, err
	}
	return source, nil
}

func mergeSource(defaults, raw *Source) *Source {
	return &Source{
		Selectors: Selectors{
			Header:    cmp.Or(raw.Selectors.Header, defaults.Selectors.Header),
			Image:     cmp.Or(raw.Selectors.Image, defaults.Selectors.Image),
			ImageAttr: cmp.Or(raw.Selectors.ImageAttr, defaults.Selectors.ImageAttr),
			Text:      cmp.Or(raw.Selectors.Text, defaults.Selectors.Text),
		},
		Fallbacks: Fallbacks{
			Title:   cmp.Or(raw.Fallbacks.Title, defaults.Fallbacks.Title),
			Link:    cmp.Or(raw.Fallbacks.Link, defaults.Fallbacks.Link),
			Date:    cmp.Or(raw.Fallbacks.Date, defaults.Fallbacks.Date),
			Header:  cmp.Or(raw.Fallbacks.Header, defaults.Fallbacks.Header),
			Image:   cmp.Or(raw.Fallbacks.Image, defaults.Fallbacks.Image),
			Text:    cmp.Or(raw.Fallbacks.Text, defaults.Fallbacks.Text),
			Article: cmp.Or(raw.Fallbacks.Article, defaults.Fallbacks.Article),
		},
		Settings: SourceSettings{
			Timeout:        cmp.Or(raw.Settings.Timeout, defaults.Settings.Timeout),
			ExtractContent: raw.Settings.ExtractContent,
		},
	}
}

func validateSource(source *Source) error {
	if source == nil {
		return fmt.Errorf("source is nil")
	}

	if _, err := compileSelectors(source.Selectors); err != nil {
		return err
	}

	return nil
}
