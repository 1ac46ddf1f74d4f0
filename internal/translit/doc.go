// Package translit converts Cyrillic text to Latin script.
//
// The Engine applies BGN/PCGN romanization tables for a selected source
// script. Text is NFC-normalized first so that decomposed letters such as
// "й" written as "и" + combining breve are matched by the tables.
//
// # Scripts
//
// Two source scripts are supported:
//   - ScriptUkrainian ("ukrainian", ICU id "Ukrainian-Latin/BGN")
//   - ScriptRussian ("russian", ICU id "Russian-Latin/BGN")
//
// # Usage
//
//	engine := translit.NewEngine()
//	latin := engine.Transliterate(translit.ScriptUkrainian, "Океан Ельзи")
//	// latin == "Okean Elʹzy"
//
// Strings that contain no Cyrillic letters are returned unchanged, so
// applying the engine twice gives the same result as applying it once.
package translit
