// Package profile loads template profiles: the static values written into a
// form and the checkbox targets ticked after it is saved. Profiles are JSON or
// YAML documents discovered by walking an fs.FS; EmbeddedFS ships the
// default curb-ramp profile.
package profile
