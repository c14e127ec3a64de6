// Package ui implements the interactive order builder using bubbletea's Elm architecture.
//
// The TUI mirrors the two-panel storefront layout as a multi-view workflow:
//  1. [BuilderView] : Pick a search type, fill the fields, fire streaming searches
//  2. [ArtistPickView] : Choose among artist candidates returned by search-as-you-type
//  3. [ArtistDetailView] : Inspect the selected artist and request their hits or discography
//  4. [PreviewView] : Walk the grouped order, delete songs/groups, enter move mode
//  5. [DeliveryView] : Choose a delivery type when the phone prefix allows it
//  6. [ReceiptView] : Show the confirmation after a successful submission
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Streaming searches run as background tea commands; the pending-search badge
// polls the session counter on a short tick while any session is in flight.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
