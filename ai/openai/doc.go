// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package openai implements ai.AIProvider with langchaingo's OpenAI client.
// Any server speaking the OpenAI embeddings and chat completions API works,
// including Ollama, LocalAI and vLLM. Embedding and chat may live on
// different hosts.
//
//	provider, err := openai.NewProvider(ai.NewConfig(
//	    ai.WithEmbeddingHost("http://embed:11434"),
//	    ai.WithChatHost("https://api.openai.com"),
//	    ai.WithChatModel("gpt-4o-mini"),
//	    ai.WithAPIKey(os.Getenv("COURSEFINDER_API_KEY")),
//	))
//
// Hosts without a /v1 suffix get one appended by ai.Config.Normalize.
package openai
