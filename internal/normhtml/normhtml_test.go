// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package normhtml

import "testing"

func TestNormalizeHTML(t *testing.T) {
	tests := []struct {
		b    string
		want string
	}{
		{"<p>a  \t b</p>", "<p>a b</p>"},
		{"<p>a</p>\n<p>b</p>", "<p>a</p><p>b</p>"},
		{"\n\t<blockquote>\n<p>a</p>\n</blockquote>\n", "<blockquote><p>a</p></blockquote>"},
		{"<span>a  b</span> c", "<span>a b</span> c"},
		{"<pre><code>a\n  b\n</code></pre>", "<pre><code>a\n  b\n</code></pre>"},
		{`<img style="width: 40%;" src="p.png" class="image">`, `<img class="image" src="p.png" style="width: 40%;">`},
		{"<hr><br>\ntext", "<hr><br>text"},
		{"&forall;&amp;&gt;&lt;&quot;", "∀&amp;&gt;&lt;&quot;"},
	}
	for _, test := range tests {
		if got := NormalizeHTML([]byte(test.b)); string(got) != test.want {
			t.Errorf("NormalizeHTML(%q) = %q; want %q", test.b, got, test.want)
		}
	}
}
