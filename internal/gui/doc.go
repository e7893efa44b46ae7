// Package gui hosts the animation in a desktop window. Run uses raylib and
// drives the pacer with a cooperative wait loop; RunEbiten lets ebiten's
// fixed tick rate drive it and replays each recorded frame in Draw.
package gui
