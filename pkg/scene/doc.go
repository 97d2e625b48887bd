// Package scene holds the backend independent model of a benchmark scene.
//
// A [Builder] asks a backend [Factory] for one [Node] per item and places
// each at its grid cell center, fitting text and icons into the cell. The
// resulting [Scene] is then animated with an [Animator], viewed through a
// [Viewport] and queried with a [Selection].
//
// Backends own how nodes are drawn. They embed [Transform] to get the shared
// position, scale and rotation bookkeeping and keep their library objects
// alongside it.
package scene
