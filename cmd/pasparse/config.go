// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/pascal/cmd/pasparse"

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const defaultContextWidth = 100

// config holds the options which can be set from a file.
type config struct {
	AST          bool   `toml:"ast"`
	Color        bool   `toml:"color"`
	Context      bool   `toml:"source_context"`
	ContextWidth int    `toml:"context_width"`
	Stats        bool   `toml:"stats"`
	Tangle       string `toml:"tangle"` // tangle binary name or path
	Tokens       bool   `toml:"tokens"`
	With         bool   `toml:"with"`
}

func defaultConfig() config {
	return config{
		ContextWidth: defaultContextWidth,
		Tangle:       "tangle",
	}
}

func loadConfig(path string) (config, error) {
	path = os.ExpandEnv(path)
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	if u := md.Undecoded(); len(u) != 0 {
		return cfg, fmt.Errorf("loading config %s: unknown key %s", path, u[0])
	}

	if cfg.ContextWidth <= 0 {
		cfg.ContextWidth = defaultContextWidth
	}
	if cfg.Tangle == "" {
		cfg.Tangle = "tangle"
	}
	return cfg, nil
}

// override copies the values of flags that were set on the command line.
func (c *config) override(changed func(string) bool, flags config) {
	for _, v := range []struct {
		name string
		dst  *bool
		src  bool
	}{
		{"ast", &c.AST, flags.AST},
		{"color", &c.Color, flags.Color},
		{"context", &c.Context, flags.Context},
		{"stats", &c.Stats, flags.Stats},
		{"tokens", &c.Tokens, flags.Tokens},
		{"with", &c.With, flags.With},
	} {
		if changed(v.name) {
			*v.dst = v.src
		}
	}
}
