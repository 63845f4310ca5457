// Package table turns a checker result set into the page the user sees.
//
// # Pipeline
//
// ComputeView runs the same four stages on every call:
//
//  1. Enhance derives the formatted response time and its milliseconds once
//     per result set.
//  2. Filter keeps rows matching every entry of the FilterSpec. Text filters
//     are case-insensitive substrings; set filters match any listed value.
//  3. Sort orders rows stably by one column. No sort keeps backend order.
//  4. Page slices the sorted rows and clamps the page index.
//
// Table holds the enhanced rows for one result set so the UI only pays for
// enhancement when a new check lands.
//
// # View State
//
// ViewState owns filters, sort, column order and visibility and the page
// window. Every mutation goes through a named method that reports a Change to
// one subscriber.
//
// # Query Sync
//
// A Synchronizer subscribes to a ViewState and writes filters and sort into
// a Location as filter_<column>, sortColumn and sortDir parameters.
// DecodeQuery and ViewState.ApplySeed read the same parameters back, so a
// saved address restores the view.
package table
