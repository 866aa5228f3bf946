// Package physics provides the mode equations of a planar dielectric slab.
//
// Each (theory, polarization) pair maps to an [Equation]: a scalar function
// whose zeros are the guided modes, together with the physically valid
// interval of its variable:
//
//   - ray optics: transverse resonance sin(k0 n1 d sin(psi) - phi_s - phi_c)
//     over the axial ray angle psi in (0, psi_c)
//   - wave theory: the characteristic equation in U = kappa d / 2,
//     (U^2 - rho_s rho_c W_s W_c) tan(2U) - U (rho_s W_s + rho_c W_c),
//     over U in (0, V). It has asymptotes wherever tan(2U) does.
//
// rho is 1 for TE and (n1/n_i)^2 for TM. Both formulations describe the
// same slab and must agree on the number of guided modes.
//
// The package also carries closed-form companions of a solved mode:
//
//   - [Field]: transverse and longitudinal field profiles, confinement
//   - [Coupler]: power exchange between two parallel guides
package physics
