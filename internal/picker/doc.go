// Package picker hosts the interactive pick workflow.
//
// Service prompts for a GitHub username, probes gh, lists the account's
// repositories, renders a numbered menu, and hands the chosen repository to
// workspace for cloning or fast-forwarding. CommandBuilder wires the
// production collaborators into a cobra command.
package picker
