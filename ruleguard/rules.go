package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards returning the same value are one guard.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

// The stdio transport owns stdout: a stray print corrupts the frame stream.
func stdoutPrints(m dsl.Matcher) {
	m.Match(`fmt.Println($*_)`, `fmt.Printf($*_)`, `fmt.Print($*_)`).
		Report(`stdout carries MCP frames on the stdio transport; log via slog or write to an injected io.Writer`)
}
