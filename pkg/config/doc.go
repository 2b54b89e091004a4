// Package config parses placement configuration files into the canonical
// engine.PlacementConfig model.
//
// Two text formats are supported, with deliberately different error
// policies:
//
//   - The rich format (ParseRich) is human-authored, with explicit scoped
//     attributes. Any syntax or scope error aborts the whole parse with a
//     file:line diagnostic; a person should fix the file.
//
//   - The measured format (ParseMeasured) is produced by the external
//     calibration assistant from physically probed positions. Individual
//     malformed lines are logged and skipped, since machine-generated
//     output is expected to contain benign noise; only the post-parse
//     height cross-check can reject the result outright.
//
// Both parsers either return a complete configuration or no result; a
// failed parse never yields partial state.
package config
