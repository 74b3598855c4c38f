// Package openai transcribes normalized audio through the OpenAI audio
// transcriptions API as an alternative to the local Whisper CLI.
//
// Unlike the CLI engine, the API returns transcript content in the response
// body, so this service writes the produced file itself. Output layout and
// naming mirror the CLI engine so pipeline placement is engine-agnostic.
package openai
