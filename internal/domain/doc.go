// Package domain contains the core entities of the card browser: flash cards
// as the card source delivers them and the category labels used to filter
// them. The browser treats cards as opaque; validation here serves the
// loaders that construct cards, not the controller.
package domain
