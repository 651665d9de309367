/*
Package gclplugin provides golangci-lint plugin integration for the guardcheck analyzer.

# Usage

1. Add a file `.custom-gcl.yaml` to your source with:

	---
	version: v2.7.0

	name: golangci-lint
	destination: .

	plugins:
	  - module: github.com/Cresspresso/defer
	    import: github.com/Cresspresso/defer/gclplugin

2. Run `golangci-lint custom` from your project root.

This will create a custom `golangci-lint` executable in your project root.

3. Configure the linter in `.golangci.yaml`:

	---
	version: "2"
	linters:
	  default: none
	  enable:
	    - guardcheck
	  settings:
	    custom:
	      guardcheck:
	        type: module
	        description: "guardcheck reports scope guards that can never fire."

4. Run the linter:

	./golangci-lint run .
*/
package gclplugin
