// Package store implements named key-value stores for webview app state.
//
// Each store is a flat JSON document under stores/ in the data directory,
// loaded lazily on first access and written back atomically on every
// mutation. The default store is "settings"; apps can address others by
// passing a store parameter.
package store
