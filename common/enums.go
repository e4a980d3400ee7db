// Enums shared between configuration and the editor kernel live here so that
// the config package does not have to import editor types and vice versa.
package common

// Placement of a tooltip relative to the element it annotates.
// ENUM(top, bottom, left, right)
type TooltipPlacement int
