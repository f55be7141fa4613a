// Package display draws a set of overlapping objects to a small display one
// scan line at a time, and sends touch events to them.
//
// Objects are kept in a Registry ordered by depth. For every line of the
// screen, the Compositor asks each object that intersects the line to draw
// into a line buffer, from the lowest depth to the highest, and streams the
// result to the Panel. Touch samples are resolved against the same registry,
// from the highest depth down.
//
// There are three locks:
//
//   - The line lock guards the registry and the bounding boxes of all
//     objects in it. It is held while one line is drawn.
//   - The frame lock is held while a whole frame is drawn. Take it with
//     LockDisplay to make several changes appear at once.
//   - The bus lock guards the bus shared by the panel and the touch sensor.
package display
