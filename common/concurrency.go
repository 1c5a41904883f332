// Copyright © 2017 Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package common

// DefaultThreadsPerPool is the worker count used per pool (scan pool and file
// copy pool alike) when --threads is not given, per spec section 6.
const DefaultThreadsPerPool = 8

// ResolveThreadCount returns requested if it is positive, else the default.
// Kept as a tiny pure function (rather than reading an env var override the
// way the teacher's ComputeConcurrencyValue does for AZCOPY_CONCURRENCY_VALUE)
// because this tool only has one run-time knob to begin with, exposed
// directly as --threads; a second, hidden override for the same value would
// just be a second way to set the one thing the flag already sets.
func ResolveThreadCount(requested int) int {
	if requested > 0 {
		return requested
	}
	return DefaultThreadsPerPool
}
