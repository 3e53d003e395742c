// Package fuzztests houses Go fuzz harnesses for the tt front end and code
// generator: arbitrary bytes must never panic the cleaner, lexer, parser or
// builder, and whatever the generator accepts must come out as valid Go.
//
// Не делает: запись файлов, запуск CLI.
package fuzztests
