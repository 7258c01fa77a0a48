// Package llm provides a provider-neutral abstraction layer for Large Language Model (LLM) APIs.
//
// This package defines common types, interfaces, and utilities that allow the codebase
// to work with multiple LLM providers (Anthropic, OpenAI) without being tightly coupled
// to any specific provider's wire format.
//
// # Core Concepts
//
//  1. Messages: The Message type represents a conversation message with a role
//     (user or assistant) and text content. System prompts travel separately on
//     the Request because their placement is provider-specific.
//
//  2. Client Interface: The Client interface provides Complete() for buffered calls
//     and Stream() for streaming calls. Implementations handle provider-specific
//     details internally: endpoint resolution, auth headers, and body shaping.
//
//  3. Streams: A Stream is a single-pass sequence of text deltas that concatenate
//     in emission order into the full response text. Consumption drives the
//     underlying network reads; Close aborts the exchange.
//
//  4. Middleware: The Middleware and StreamMiddleware interfaces allow adding
//     cross-cutting concerns like logging without modifying provider
//     implementations. RetryClient wraps a Client with an opt-in retry policy;
//     provider clients themselves never retry.
//
//  5. Errors: The Error type provides provider-neutral error handling covering
//     unsupported providers, non-success HTTP responses, transport failures,
//     unreadable stream bodies, and registry misuse.
//
// Usage Example
//
//	cfg := llm.Config{
//	    Provider: llm.ProviderAnthropic,
//	    Model:    "claude-sonnet-4-20250514",
//	    APIKey:   apiKey,
//	}
//
//	client, err := service.NewClient(cfg, logger)
//
//	req := &llm.Request{
//	    System:   "You are a helpful assistant.",
//	    Messages: []llm.Message{llm.NewTextMessage(llm.RoleUser, "Hello!")},
//	}
//
//	resp, err := client.Complete(ctx, req)
//
// # Extension Points
//
// To add a new LLM provider:
//  1. Implement the Client interface
//  2. Translate between provider wire types and llm package types
//  3. Reuse the sse package for streaming, supplying an ExtractFunc for the
//     provider's event shape
//  4. Translate provider failures to llm.Error values
//
// To add middleware:
//  1. Implement the Middleware or StreamMiddleware interface
//  2. Use WrapWithMiddleware to wrap your Client with middleware
//  3. The returned Client can be used anywhere a Client is expected
package llm
