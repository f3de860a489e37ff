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


// Package ai defines the two model capabilities the course finder consumes:
// dense text embedding (Embedder) and prompt-in, text-out chat completion
// (Generator). AIProvider bundles both behind one lifecycle.
//
// Nothing in the ranking code talks to a model directly. The lexical matcher
// needs no model at all; the embedding matcher and the chat assistant take
// these interfaces, so tests run against ai/mock and production runs against
// ai/openai.
//
// Constructors in ai/openai return the interfaces. Constructors in ai/mock
// return concrete types so tests can inject behavior and read call counts.
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, courseTexts)
package ai
