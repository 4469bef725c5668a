// Package shopinsight extracts brand insights from storefront websites.
// It fetches a store's main page and its /products.json feed, runs a set of
// best-effort heuristics over them (hero products, FAQs, social handles,
// contact details, about text, footer links) and hands the aggregate to a
// text-structuring model and a relational store.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package shopinsight
