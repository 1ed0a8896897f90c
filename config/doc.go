// Package config holds the user-facing option set of the extraction
// pipeline.
//
// Options carry the flat option names used in config files and as
// --name=value command line overrides, for example table_data_mode,
// line_minCols or text_paragraph_gap_factor. [Default] returns every
// default; [Load] and [Decode] read YAML or JSON over the defaults:
//
//	opts, warnings, err := config.Load("layoutkit.yaml")
//	if err != nil {
//	    // unreadable or malformed file
//	}
//	for _, w := range warnings {
//	    slog.Warn("option ignored", "err", w)
//	}
//
// Unknown names and unusable values never fail a run. They are reported
// as warnings wrapping [ErrUnknownOption] or [ErrInvalidOption] and the
// default stays in effect.
//
// The converters [Options.TableConfig], [Options.LayoutConfig] and
// [Options.AssembleConfig] produce the typed configuration of each stage.
package config
