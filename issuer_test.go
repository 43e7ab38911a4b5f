// Copyright 2024-2026 The courier Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package courier

import "testing"

func TestDefaultIssuer(t *testing.T) {
	defer defaultIssuer.Store(nil)

	t.Run("lazy singleton", func(t *testing.T) {
		defaultIssuer.Store(nil)

		i := DefaultIssuer()
		if i == nil {
			t.Fatal("nil default issuer")
		}
		if DefaultIssuer() != i {
			t.Error("repeated calls return different issuers")
		}
	})

	t.Run("replaceable", func(t *testing.T) {
		stub := &stubIssuer{}
		SetDefaultIssuer(stub)
		if got := DefaultIssuer(); got != Issuer(stub) {
			t.Errorf("got %v, want the stub", got)
		}
	})
}
