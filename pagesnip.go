// Package pagesnip captures semantically meaningful regions of rendered web
// pages. A user either picks a region interactively (hover, click, then
// keyboard navigation) or lets the locator guess it from site presets and
// a heuristic content scorer. The chosen region is converted to portable
// HTML and Markdown and identified by a deterministic path that can be
// re-applied later.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package pagesnip
